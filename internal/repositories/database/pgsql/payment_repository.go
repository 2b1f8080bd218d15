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

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentSelectColumns = `p.payment_id, p.fund_id, p.provider_id, p.invoice_ref, p.total_amount,
	p.paid_amount, p.due_date, p.status, p.notes,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

func paymentVisibleClause(userPlaceholder string) string {
	return `EXISTS (
		SELECT 1 FROM effective_fund_access efa
		WHERE efa.user_id = ` + userPlaceholder + ` AND efa.fund_id = p.fund_id
	)`
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.FundID,
		&m.ProviderID,
		&m.InvoiceRef,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.DueDate,
		&m.Status,
		&m.Notes,
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

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, userID, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentSelectColumns + `
		FROM payments p
		WHERE p.payment_id = $1 AND ` + paymentVisibleClause("$2") + `;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, userID string, filter portsrepo.PaymentFilter, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []any{userID}
	query := `
		SELECT ` + paymentSelectColumns + `
		FROM payments p
		WHERE ` + paymentVisibleClause("$1")

	if filter.ProviderID != nil {
		args = append(args, *filter.ProviderID)
		query += ` AND p.provider_id = $` + strconv.Itoa(len(args))
	}
	if filter.FundID != nil {
		args = append(args, *filter.FundID)
		query += ` AND p.fund_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND p.status = $` + strconv.Itoa(len(args))
	}

	// Payments have no business date of their own, so the cursor orders on
	// creation time alone.
	if nextToken != nil && *nextToken != "" {
		_, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastCreatedAt)
		query += ` AND p.created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY p.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	modelPayments := make([]models.Payment, 0, fetchLimit)
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		modelPayments = append(modelPayments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelPayments) > limit {
		last := modelPayments[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CreatedAt)
		nextTokenVal = &token
		modelPayments = modelPayments[:limit]
	}
	return mapping.ToDomainPaymentSlice(modelPayments), nextTokenVal, nil
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (payment_id, fund_id, provider_id, invoice_ref, total_amount,
			paid_amount, due_date, status, notes,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.FundID,
		m.ProviderID,
		m.InvoiceRef,
		m.TotalAmount,
		m.PaidAmount,
		m.DueDate,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("referenced fund or provider does not exist: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		UPDATE payments
		SET invoice_ref = $1, total_amount = $2, paid_amount = $3, due_date = $4, status = $5,
			notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE payment_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.InvoiceRef,
		m.TotalAmount,
		m.PaidAmount,
		m.DueDate,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.PaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
