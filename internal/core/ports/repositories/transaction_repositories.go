package repositories

import (
	"context"
	"time"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// TransactionFilter is the closed set of optional list predicates. Filters
// are assembled as parameterized clauses from these fields; identifiers are
// never concatenated from request input.
type TransactionFilter struct {
	AccountID  *string
	CategoryID *string
	FundID     *string
	Type       *domain.TransactionType
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TransactionReader defines read operations for transactions. All reads are
// restricted to transactions whose allocations touch at least one fund the
// user can see; rows filtered out surface as ErrNotFound on detail reads.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction visible to the user,
	// with its allocations loaded.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a cursor-paginated, filtered page of
	// transactions visible to the user.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindAllocationsByTransactionID loads a transaction's allocation set.
	FindAllocationsByTransactionID(ctx context.Context, transactionID string) ([]domain.Allocation, error)
}

// TransactionWriter defines write operations for transactions. Multi-row
// writes are atomic: transaction plus allocations persist together or not at
// all.
type TransactionWriter interface {
	// SaveTransaction persists a transaction and its allocation set in a
	// single database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, allocations []domain.Allocation) error

	// UpdateTransaction patches the transaction row and, when newAllocations
	// is non-nil, replaces the whole allocation set (delete-all then
	// reinsert) inside the same database transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, newAllocations []domain.Allocation) error

	// DeleteTransaction removes a transaction and its allocations.
	// ErrNotFound when no row matches.
	DeleteTransaction(ctx context.Context, actingUserID, transactionID string) error

	// SaveTransactionsBatch persists a whole import batch (each transaction
	// with its allocations) in one database transaction. Any failure rolls
	// back every row.
	SaveTransactionsBatch(ctx context.Context, actingUserID string, txns []domain.Transaction, allocations []domain.Allocation) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
