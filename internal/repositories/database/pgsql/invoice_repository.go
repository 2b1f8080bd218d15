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

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelectColumns = `i.invoice_id, i.fund_id, i.client_id, i.number, i.issue_date, i.due_date,
	i.total_amount, i.status, i.notes, i.created_at, i.created_by, i.last_updated_at, i.last_updated_by`

// invoiceVisibleClause restricts reads to invoices on funds the user can see.
func invoiceVisibleClause(userPlaceholder string) string {
	return `EXISTS (
		SELECT 1 FROM effective_fund_access efa
		WHERE efa.user_id = ` + userPlaceholder + ` AND efa.fund_id = i.fund_id
	)`
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.FundID,
		&m.ClientID,
		&m.Number,
		&m.IssueDate,
		&m.DueDate,
		&m.TotalAmount,
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

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceSelectColumns + `
		FROM invoices i
		WHERE i.invoice_id = $1 AND ` + invoiceVisibleClause("$2") + `;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	invoice := mapping.ToDomainInvoice(*m)
	return &invoice, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, userID string, filter portsrepo.InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []any{userID}
	query := `
		SELECT ` + invoiceSelectColumns + `
		FROM invoices i
		WHERE ` + invoiceVisibleClause("$1")

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		query += ` AND i.client_id = $` + strconv.Itoa(len(args))
	}
	if filter.FundID != nil {
		args = append(args, *filter.FundID)
		query += ` AND i.fund_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND i.status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastIssueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastIssueDate, lastCreatedAt)
		query += ` AND (i.issue_date, i.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY i.issue_date DESC, i.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		modelInvoices = append(modelInvoices, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelInvoices) > limit {
		last := modelInvoices[limit-1]
		token := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		nextTokenVal = &token
		modelInvoices = modelInvoices[:limit]
	}
	return mapping.ToDomainInvoiceSlice(modelInvoices), nextTokenVal, nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (invoice_id, fund_id, client_id, number, issue_date, due_date,
			total_amount, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.FundID,
		m.ClientID,
		m.Number,
		m.IssueDate,
		m.DueDate,
		m.TotalAmount,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("invoice number %s already exists: %w", invoice.Number, apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("referenced fund or client does not exist: %w", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET number = $1, issue_date = $2, due_date = $3, total_amount = $4, status = $5,
			notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE invoice_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Number,
		m.IssueDate,
		m.DueDate,
		m.TotalAmount,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.InvoiceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("invoice is referenced by a settlement: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
