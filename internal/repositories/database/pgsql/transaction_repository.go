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

// PgxTransactionRepository persists bank transactions and their fund
// allocations. A transaction row and its allocation rows always move together
// in one database transaction.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const txnSelectColumns = `t.transaction_id, t.account_id, t.tx_date, t.description, t.amount, t.type,
	t.category_id, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

// txnVisibleClause restricts reads to transactions whose allocations touch at
// least one fund the user can see. The user placeholder is injected by the
// caller so it composes with the rest of the query's args.
func txnVisibleClause(userPlaceholder string) string {
	return `EXISTS (
		SELECT 1
		FROM allocations av
		JOIN effective_fund_access efa ON efa.fund_id = av.fund_id
		WHERE av.transaction_id = t.transaction_id AND efa.user_id = ` + userPlaceholder + `
	)`
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.TxDate,
		&m.Description,
		&m.Amount,
		&m.Type,
		&m.CategoryID,
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

// FindTransactionByID retrieves a transaction visible to the user, with its
// allocations loaded. Not-visible and absent both return ErrNotFound.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + txnSelectColumns + `
		FROM transactions t
		WHERE t.transaction_id = $1 AND ` + txnVisibleClause("$2") + `;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	allocations, err := r.FindAllocationsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Allocations = allocations
	return &txn, nil
}

func (r *PgxTransactionRepository) FindAllocationsByTransactionID(ctx context.Context, transactionID string) ([]domain.Allocation, error) {
	query := `
		SELECT allocation_id, transaction_id, fund_id, ratio
		FROM allocations
		WHERE transaction_id = $1
		ORDER BY fund_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	modelAllocations := []models.Allocation{}
	for rows.Next() {
		var m models.Allocation
		if err := rows.Scan(&m.AllocationID, &m.TransactionID, &m.FundID, &m.Ratio); err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		modelAllocations = append(modelAllocations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return mapping.ToDomainAllocationSlice(modelAllocations), nil
}

// ListTransactions retrieves a filtered, cursor-paginated page of
// transactions visible to the user. Filters are assembled as parameterized
// clauses only; request input never reaches the query text.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	args := []any{userID}
	query := `
		SELECT ` + txnSelectColumns + `
		FROM transactions t
		WHERE ` + txnVisibleClause("$1")

	addClause := func(clause string, value any) {
		args = append(args, value)
		query += ` AND ` + clause + `$` + strconv.Itoa(len(args))
	}

	if filter.AccountID != nil {
		addClause(`t.account_id = `, *filter.AccountID)
	}
	if filter.CategoryID != nil {
		addClause(`t.category_id = `, *filter.CategoryID)
	}
	if filter.Type != nil {
		addClause(`t.type = `, string(*filter.Type))
	}
	if filter.DateFrom != nil {
		addClause(`t.tx_date >= `, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addClause(`t.tx_date <= `, *filter.DateTo)
	}
	if filter.FundID != nil {
		args = append(args, *filter.FundID)
		query += ` AND EXISTS (
			SELECT 1 FROM allocations af
			WHERE af.transaction_id = t.transaction_id AND af.fund_id = $` + strconv.Itoa(len(args)) + `
		)`
	}

	if nextToken != nil && *nextToken != "" {
		lastTxDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastTxDate, lastCreatedAt)
		query += ` AND (t.tx_date, t.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY t.tx_date DESC, t.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(last.TxDate, last.CreatedAt)
		nextTokenVal = &token
		modelTxns = modelTxns[:limit]
	}

	txns := mapping.ToDomainTransactionSlice(modelTxns)
	if err := r.attachAllocations(ctx, txns); err != nil {
		return nil, nil, err
	}
	return txns, nextTokenVal, nil
}

// attachAllocations loads the allocation sets for a page of transactions in
// one query.
func (r *PgxTransactionRepository) attachAllocations(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	ids := make([]string, len(txns))
	index := make(map[string]int, len(txns))
	for i, txn := range txns {
		ids[i] = txn.TransactionID
		index[txn.TransactionID] = i
	}

	query := `
		SELECT allocation_id, transaction_id, fund_id, ratio
		FROM allocations
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, fund_id;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query allocations for transaction page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Allocation
		if err := rows.Scan(&m.AllocationID, &m.TransactionID, &m.FundID, &m.Ratio); err != nil {
			return fmt.Errorf("failed to scan allocation row: %w", err)
		}
		i := index[m.TransactionID]
		txns[i].Allocations = append(txns[i].Allocations, mapping.ToDomainAllocation(m))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return nil
}

const insertTxnQuery = `
	INSERT INTO transactions (transaction_id, account_id, tx_date, description, amount, type,
		category_id, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

const insertAllocationQuery = `
	INSERT INTO allocations (allocation_id, transaction_id, fund_id, ratio)
	VALUES ($1, $2, $3, $4);
`

func queueTransactionInsert(batch *pgx.Batch, m models.Transaction) {
	batch.Queue(insertTxnQuery,
		m.TransactionID,
		m.AccountID,
		m.TxDate,
		m.Description,
		m.Amount,
		m.Type,
		m.CategoryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// SaveTransaction persists a transaction and its allocation set atomically.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, allocations []domain.Allocation) error {
	tx, err := r.Begin(ctx, txn.CreatedBy)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queueTransactionInsert(batch, mapping.ToModelTransaction(txn))
	for _, a := range allocations {
		m := mapping.ToModelAllocation(a)
		batch.Queue(insertAllocationQuery, m.AllocationID, m.TransactionID, m.FundID, m.Ratio)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("referenced account, category or fund does not exist: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return r.Commit(ctx, tx)
}

// UpdateTransaction patches the transaction row and, when newAllocations is
// non-nil, replaces the allocation set wholesale inside the same database
// transaction. A nil set leaves existing allocations untouched.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, newAllocations []domain.Allocation) error {
	tx, err := r.Begin(ctx, txn.LastUpdatedBy)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	updateQuery := `
		UPDATE transactions
		SET account_id = $1, tx_date = $2, description = $3, amount = $4, type = $5,
			category_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $9;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.AccountID,
		m.TxDate,
		m.Description,
		m.Amount,
		m.Type,
		m.CategoryID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}

	if newAllocations != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM allocations WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
			return fmt.Errorf("failed to clear allocations for transaction %s: %w", txn.TransactionID, err)
		}
		batch := &pgx.Batch{}
		for _, a := range newAllocations {
			ma := mapping.ToModelAllocation(a)
			batch.Queue(insertAllocationQuery, ma.AllocationID, ma.TransactionID, ma.FundID, ma.Ratio)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("allocation references unknown fund: %w", apperrors.ErrValidation)
			}
			return fmt.Errorf("failed to replace allocations for transaction %s: %w", txn.TransactionID, err)
		}
	}
	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction and its allocations.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, actingUserID, transactionID string) error {
	tx, err := r.Begin(ctx, actingUserID)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM allocations WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete allocations for transaction %s: %w", transactionID, err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return r.Commit(ctx, tx)
}

// SaveTransactionsBatch persists a whole import batch in one database
// transaction. Any row failure rolls back every row.
func (r *PgxTransactionRepository) SaveTransactionsBatch(ctx context.Context, actingUserID string, txns []domain.Transaction, allocations []domain.Allocation) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx, actingUserID)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, txn := range txns {
		queueTransactionInsert(batch, mapping.ToModelTransaction(txn))
	}
	for _, a := range allocations {
		m := mapping.ToModelAllocation(a)
		batch.Queue(insertAllocationQuery, m.AllocationID, m.TransactionID, m.FundID, m.Ratio)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("import references unknown account or fund: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to insert transaction batch: %w", err)
	}
	return r.Commit(ctx, tx)
}
