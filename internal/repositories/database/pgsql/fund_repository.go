package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	"github.com/fondosar/backoffice_api/internal/models"
	"github.com/fondosar/backoffice_api/internal/utils/mapping"
)

type PgxFundRepository struct {
	BaseRepository
}

func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFundRepository implements portsrepo.FundRepositoryFacade
var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

const fundSelectColumns = `f.fund_id, f.name, f.description, f.is_active,
	f.created_at, f.created_by, f.last_updated_at, f.last_updated_by`

func scanFund(row pgx.Row) (*models.Fund, error) {
	var m models.Fund
	err := row.Scan(
		&m.FundID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindFundByID retrieves a fund the user can see. Absent and not-visible both
// surface as ErrNotFound.
func (r *PgxFundRepository) FindFundByID(ctx context.Context, userID, fundID string) (*domain.Fund, error) {
	query := `
		SELECT ` + fundSelectColumns + `
		FROM funds f
		WHERE f.fund_id = $1
		  AND EXISTS (
			SELECT 1 FROM effective_fund_access efa
			WHERE efa.user_id = $2 AND efa.fund_id = f.fund_id
		  );
	`
	m, err := scanFund(r.Pool.QueryRow(ctx, query, fundID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund by ID %s: %w", fundID, err)
	}
	fund := mapping.ToDomainFund(*m)
	return &fund, nil
}

func (r *PgxFundRepository) ListFunds(ctx context.Context, userID string, includeInactive bool) ([]domain.Fund, error) {
	query := `
		SELECT ` + fundSelectColumns + `
		FROM funds f
		WHERE EXISTS (
			SELECT 1 FROM effective_fund_access efa
			WHERE efa.user_id = $1 AND efa.fund_id = f.fund_id
		)
	`
	if !includeInactive {
		query += ` AND f.is_active = TRUE`
	}
	query += ` ORDER BY f.name;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query funds for user %s: %w", userID, err)
	}
	defer rows.Close()

	funds := []domain.Fund{}
	for rows.Next() {
		m, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund row: %w", err)
		}
		funds = append(funds, mapping.ToDomainFund(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund rows: %w", err)
	}
	return funds, nil
}

func (r *PgxFundRepository) SaveFund(ctx context.Context, fund domain.Fund) error {
	modelFund := mapping.ToModelFund(fund)
	query := `
		INSERT INTO funds (fund_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelFund.FundID,
		modelFund.Name,
		modelFund.Description,
		modelFund.IsActive,
		modelFund.CreatedAt,
		modelFund.CreatedBy,
		modelFund.LastUpdatedAt,
		modelFund.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("fund %s already exists: %w", fund.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save fund %s: %w", fund.FundID, err)
	}
	return nil
}

func (r *PgxFundRepository) UpdateFund(ctx context.Context, fund domain.Fund) error {
	modelFund := mapping.ToModelFund(fund)
	query := `
		UPDATE funds
		SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fund_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelFund.Name,
		modelFund.Description,
		modelFund.IsActive,
		modelFund.LastUpdatedAt,
		modelFund.LastUpdatedBy,
		modelFund.FundID,
	)
	if err != nil {
		return fmt.Errorf("failed to update fund %s: %w", fund.FundID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("fund not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
