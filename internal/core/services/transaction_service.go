package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// transactionService handles business logic for bank transactions and their
// fund allocations.
type transactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	authorizer portssvc.AccessAuthorizerSvc
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, authorizer portssvc.AccessAuthorizerSvc) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, authorizer: authorizer}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID retrieves a transaction visible to the user, with its
// allocations loaded.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, requestingUserID, transactionID)
}

// ListTransactions retrieves a filtered, cursor-paginated page of
// transactions visible to the user.
func (s *transactionService) ListTransactions(ctx context.Context, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.TransactionFilter{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		FundID:     params.FundID,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
	}
	if params.Type != nil {
		txnType := domain.TransactionType(*params.Type)
		if !txnType.IsValid() {
			return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, *params.Type)
		}
		filter.Type = &txnType
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, requestingUserID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := dto.ToListTransactionsResponse(txns, nextToken)
	return &resp, nil
}

// CreateTransaction validates and persists a transaction with its allocation
// set. The request must carry exactly one of fundID (sugar for a single
// full-ratio allocation) or an explicit allocations list, and the creator
// needs write scope on every allocated fund.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if (req.FundID == nil) == (len(req.Allocations) == 0) {
		return nil, fmt.Errorf("%w: provide exactly one of fundID or allocations", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		TxDate:        req.TxDate,
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          domain.TransactionType(req.Type),
		CategoryID:    req.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	allocations := req.ToDomainAllocations()
	if err := domain.ValidateAllocations(allocations); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	for i := range allocations {
		allocations[i].AllocationID = uuid.NewString()
		allocations[i].TransactionID = txn.TransactionID
	}

	if err := s.authorizer.RequireFundScope(ctx, creatorUserID, domain.FundIDs(allocations), domain.ScopeWrite); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, allocations); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	txn.Allocations = allocations
	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

// UpdateTransaction patches a transaction; a non-nil allocation list in the
// request replaces the existing set wholesale. The caller needs write scope
// on the current funds and, when reallocating, on the new funds too.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, requestingUserID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, domain.FundIDs(txn.Allocations), domain.ScopeWrite); err != nil {
		return nil, err
	}

	if req.TxDate != nil {
		txn.TxDate = *req.TxDate
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Type != nil {
		txn.Type = domain.TransactionType(*req.Type)
	}
	if req.CategoryID != nil {
		txn.CategoryID = req.CategoryID
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	var newAllocations []domain.Allocation
	if req.Allocations != nil {
		newAllocations = make([]domain.Allocation, len(req.Allocations))
		for i, a := range req.Allocations {
			newAllocations[i] = domain.Allocation{
				AllocationID:  uuid.NewString(),
				TransactionID: txn.TransactionID,
				FundID:        a.FundID,
				Ratio:         a.Ratio,
			}
		}
		if err := domain.ValidateAllocations(newAllocations); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if err := s.authorizer.RequireFundScope(ctx, requestingUserID, domain.FundIDs(newAllocations), domain.ScopeWrite); err != nil {
			return nil, err
		}
	}

	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = requestingUserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn, newAllocations); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if newAllocations != nil {
		txn.Allocations = newAllocations
	}
	return txn, nil
}

// DeleteTransaction removes a transaction and its allocations. Deletes are
// admin-role-gated; a transaction outside the caller's visibility deletes as
// not found.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error {
	if _, err := s.txnRepo.FindTransactionByID(ctx, requestingUserID, transactionID); err != nil {
		return err
	}

	if err := s.authorizer.RequireRole(ctx, requestingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, requestingUserID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
