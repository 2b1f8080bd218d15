package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/csvimport"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// importService turns uploaded bank statement CSVs into persisted
// transactions. The import is all-or-nothing: a single bad row blocks the
// whole batch, and a dry run never writes.
type importService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	authorizer portssvc.AccessAuthorizerSvc
}

// NewImportService creates a new import service.
func NewImportService(txnRepo portsrepo.TransactionRepositoryFacade, authorizer portssvc.AccessAuthorizerSvc) portssvc.ImportSvcFacade {
	return &importService{txnRepo: txnRepo, authorizer: authorizer}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// ImportStatement parses a CSV statement and persists the resulting
// transactions in one database transaction. Row errors are itemized by file
// line number; when any row fails, nothing is written.
func (s *importService) ImportStatement(ctx context.Context, r io.Reader, dryRun bool, requestingUserID string) (*dto.ImportResultResponse, error) {
	rows, rowErrs, err := csvimport.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	result := &dto.ImportResultResponse{
		DryRun:    dryRun,
		RowsRead:  len(rows) + len(rowErrs),
		RowErrors: dto.ToImportRowErrors(rowErrs),
	}
	if len(rowErrs) > 0 {
		s.LogInfo(ctx, "Statement import blocked by row errors",
			slog.Int("rows_read", result.RowsRead),
			slog.Int("row_errors", len(rowErrs)))
		return result, nil
	}
	if len(rows) == 0 {
		return result, nil
	}

	// The fund gate runs even on dry runs so a dry run reports the same
	// outcome the real import would.
	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, csvimport.FundIDs(rows), domain.ScopeWrite); err != nil {
		return nil, err
	}

	if dryRun {
		result.RowsImported = 0
		return result, nil
	}

	now := time.Now()
	txns := make([]domain.Transaction, len(rows))
	allocations := make([]domain.Allocation, len(rows))
	for i, row := range rows {
		txnID := uuid.NewString()
		txns[i] = domain.Transaction{
			TransactionID: txnID,
			AccountID:     row.AccountID,
			TxDate:        row.TxDate,
			Description:   row.Description,
			Amount:        row.Amount,
			Type:          row.Type,
			CategoryID:    row.CategoryID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
		allocations[i] = domain.Allocation{
			AllocationID:  uuid.NewString(),
			TransactionID: txnID,
			FundID:        row.FundID,
			Ratio:         decimal.NewFromInt(1),
		}
	}

	if err := s.txnRepo.SaveTransactionsBatch(ctx, requestingUserID, txns, allocations); err != nil {
		s.LogError(ctx, err, "Failed to persist statement import", slog.Int("rows", len(txns)))
		return nil, fmt.Errorf("failed to import statement: %w", err)
	}

	result.RowsImported = len(txns)
	s.LogInfo(ctx, "Statement imported", slog.Int("rows_imported", result.RowsImported))
	return result, nil
}
