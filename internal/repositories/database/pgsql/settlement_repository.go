package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	"github.com/fondosar/backoffice_api/internal/models"
	"github.com/fondosar/backoffice_api/internal/utils/mapping"
	"github.com/fondosar/backoffice_api/internal/utils/pagination"
)

// PgxSettlementRepository persists settlement headers with their line
// collections. One settlement_lines table holds all five collections,
// discriminated by kind; header and lines always move in one database
// transaction. Totals are never stored, so reads always reload the lines.
type PgxSettlementRepository struct {
	BaseRepository
}

func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepositoryFacade
var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

const settlementSelectColumns = `s.settlement_id, s.fund_id, s.client_id, s.payment_method,
	s.ingreso_banco, s.impositivo, s.comments, s.settled_at,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by`

func settlementVisibleClause(userPlaceholder string) string {
	return `EXISTS (
		SELECT 1 FROM effective_fund_access efa
		WHERE efa.user_id = ` + userPlaceholder + ` AND efa.fund_id = s.fund_id
	)`
}

func scanSettlement(row pgx.Row) (*models.Settlement, error) {
	var m models.Settlement
	err := row.Scan(
		&m.SettlementID,
		&m.FundID,
		&m.ClientID,
		&m.PaymentMethod,
		&m.IngresoBanco,
		&m.Impositivo,
		&m.Comments,
		&m.SettledAt,
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

func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, userID, settlementID string) (*domain.Settlement, error) {
	query := `
		SELECT ` + settlementSelectColumns + `
		FROM settlements s
		WHERE s.settlement_id = $1 AND ` + settlementVisibleClause("$2") + `;`
	m, err := scanSettlement(r.Pool.QueryRow(ctx, query, settlementID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement by ID %s: %w", settlementID, err)
	}

	settlement := mapping.ToDomainSettlement(*m)
	lines, err := r.findLines(ctx, []string{settlementID})
	if err != nil {
		return nil, err
	}
	settlement.Lines = lines[settlementID]
	return &settlement, nil
}

func (r *PgxSettlementRepository) ListSettlements(ctx context.Context, userID string, clientID *string, limit int, nextToken *string) ([]domain.Settlement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []any{userID}
	query := `
		SELECT ` + settlementSelectColumns + `
		FROM settlements s
		WHERE ` + settlementVisibleClause("$1")

	if clientID != nil {
		args = append(args, *clientID)
		query += ` AND s.client_id = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastSettledAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastSettledAt, lastCreatedAt)
		query += ` AND (s.settled_at, s.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY s.settled_at DESC, s.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	modelSettlements := make([]models.Settlement, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		modelSettlements = append(modelSettlements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelSettlements) > limit {
		last := modelSettlements[limit-1]
		token := pagination.EncodeToken(last.SettledAt, last.CreatedAt)
		nextTokenVal = &token
		modelSettlements = modelSettlements[:limit]
	}

	ids := make([]string, len(modelSettlements))
	settlements := make([]domain.Settlement, len(modelSettlements))
	for i, m := range modelSettlements {
		ids[i] = m.SettlementID
		settlements[i] = mapping.ToDomainSettlement(m)
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range settlements {
		settlements[i].Lines = lines[settlements[i].SettlementID]
	}
	return settlements, nextTokenVal, nil
}

// findLines loads line collections for a set of settlements in one query,
// keyed by settlement ID.
func (r *PgxSettlementRepository) findLines(ctx context.Context, settlementIDs []string) (map[string][]domain.SettlementLine, error) {
	linesByID := make(map[string][]domain.SettlementLine, len(settlementIDs))
	if len(settlementIDs) == 0 {
		return linesByID, nil
	}

	query := `
		SELECT line_id, settlement_id, kind, description, amount, invoice_id
		FROM settlement_lines
		WHERE settlement_id = ANY($1)
		ORDER BY settlement_id, kind, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, settlementIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.SettlementLine
		if err := rows.Scan(&m.LineID, &m.SettlementID, &m.Kind, &m.Description, &m.Amount, &m.InvoiceID); err != nil {
			return nil, fmt.Errorf("failed to scan settlement line row: %w", err)
		}
		linesByID[m.SettlementID] = append(linesByID[m.SettlementID], mapping.ToDomainSettlementLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement line rows: %w", err)
	}
	return linesByID, nil
}

// SaveSettlement persists the header and every line in one database
// transaction.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	tx, err := r.Begin(ctx, settlement.CreatedBy)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelSettlement(settlement)
	headerQuery := `
		INSERT INTO settlements (settlement_id, fund_id, client_id, payment_method,
			ingreso_banco, impositivo, comments, settled_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, headerQuery,
		m.SettlementID,
		m.FundID,
		m.ClientID,
		m.PaymentMethod,
		m.IngresoBanco,
		m.Impositivo,
		m.Comments,
		m.SettledAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("referenced fund or client does not exist: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to insert settlement %s: %w", settlement.SettlementID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO settlement_lines (line_id, settlement_id, kind, description, amount, invoice_id)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range settlement.Lines {
		ml := mapping.ToModelSettlementLine(line)
		batch.Queue(lineQuery, ml.LineID, ml.SettlementID, ml.Kind, ml.Description, ml.Amount, ml.InvoiceID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("settlement line references unknown invoice: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to insert lines for settlement %s: %w", settlement.SettlementID, err)
	}
	return r.Commit(ctx, tx)
}

// DeleteSettlement removes the header and all its lines.
func (r *PgxSettlementRepository) DeleteSettlement(ctx context.Context, actingUserID, settlementID string) error {
	tx, err := r.Begin(ctx, actingUserID)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM settlement_lines WHERE settlement_id = $1;`, settlementID); err != nil {
		return fmt.Errorf("failed to delete lines for settlement %s: %w", settlementID, err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM settlements WHERE settlement_id = $1;`, settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement %s: %w", settlementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("settlement not found: %w", apperrors.ErrNotFound)
	}
	return r.Commit(ctx, tx)
}
