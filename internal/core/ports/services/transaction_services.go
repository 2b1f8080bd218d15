package services

import (
	"context"
	"io"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction visible to the user, with
	// its allocations.
	GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, cursor-paginated page of
	// transactions visible to the user.
	ListTransactions(ctx context.Context, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction validates and persists a transaction with its
	// allocation set. Requires write scope on every allocated fund.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction patches a transaction; a non-nil allocation set in
	// the request replaces the existing one wholesale.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and its allocations.
	DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// ImportSvcFacade defines the CSV bank-statement import operation.
type ImportSvcFacade interface {
	// ImportStatement parses a CSV statement and persists the resulting
	// transactions all-or-nothing. With dryRun the file is validated and
	// reported on without writing anything. Any row error blocks the whole
	// batch; the result itemizes failures by file line number.
	ImportStatement(ctx context.Context, r io.Reader, dryRun bool, requestingUserID string) (*dto.ImportResultResponse, error)
}
