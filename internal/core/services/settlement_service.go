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

// settlementService handles business logic for client settlements. The final
// total is a pure function of the header amounts and lines, computed at the
// read boundary and never stored.
type settlementService struct {
	BaseService
	settlementRepo portsrepo.SettlementRepositoryFacade
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	authorizer     portssvc.AccessAuthorizerSvc
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(settlementRepo portsrepo.SettlementRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, authorizer portssvc.AccessAuthorizerSvc) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo: settlementRepo,
		invoiceRepo:    invoiceRepo,
		authorizer:     authorizer,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// GetSettlementByID retrieves a settlement visible to the user, with all
// line collections loaded.
func (s *settlementService) GetSettlementByID(ctx context.Context, settlementID string, requestingUserID string) (*domain.Settlement, error) {
	return s.settlementRepo.FindSettlementByID(ctx, requestingUserID, settlementID)
}

// ListSettlements retrieves a cursor-paginated page of settlements visible
// to the user.
func (s *settlementService) ListSettlements(ctx context.Context, requestingUserID string, params dto.ListSettlementsParams) (*dto.ListSettlementsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	settlements, nextToken, err := s.settlementRepo.ListSettlements(ctx, requestingUserID, params.ClientID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settlements")
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	resp := dto.ToListSettlementsResponse(settlements, nextToken)
	return &resp, nil
}

// CreateSettlement validates and persists a settlement with its lines in one
// database transaction. Requires write scope on the fund; every referenced
// invoice must be visible to the caller.
func (s *settlementService) CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest, creatorUserID string) (*domain.Settlement, error) {
	if err := s.authorizer.RequireFundScope(ctx, creatorUserID, []string{req.FundID}, domain.ScopeWrite); err != nil {
		return nil, err
	}

	now := time.Now()
	settlement := domain.Settlement{
		SettlementID:  uuid.NewString(),
		FundID:        req.FundID,
		ClientID:      req.ClientID,
		PaymentMethod: req.PaymentMethod,
		IngresoBanco:  req.IngresoBanco,
		Impositivo:    req.Impositivo,
		Comments:      req.Comments,
		SettledAt:     req.SettledAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		Lines: req.ToDomainLines(),
	}
	for i := range settlement.Lines {
		settlement.Lines[i].LineID = uuid.NewString()
		settlement.Lines[i].SettlementID = settlement.SettlementID
	}

	if err := settlement.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Invoice lines referencing an invoice must point at one the caller can
	// see; an invisible invoice reads the same as an absent one. Invoices in
	// estado Baja are not settleable.
	for _, line := range settlement.Lines {
		if line.Kind != domain.LineInvoice || line.InvoiceID == nil {
			continue
		}
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, creatorUserID, *line.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("%w: invoice %s not found", apperrors.ErrValidation, *line.InvoiceID)
		}
		if invoice.Status == domain.InvoiceBaja {
			return nil, fmt.Errorf("%w: invoice %s is dada de baja", apperrors.ErrValidation, *line.InvoiceID)
		}
	}

	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		s.LogError(ctx, err, "Failed to save settlement", slog.String("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	s.LogInfo(ctx, "Settlement created",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("total_final", settlement.TotalFinal().String()))
	return &settlement, nil
}

// DeleteSettlement removes a settlement and its lines. Deletes are
// admin-role-gated; an invisible settlement deletes as not found.
func (s *settlementService) DeleteSettlement(ctx context.Context, settlementID string, requestingUserID string) error {
	if _, err := s.settlementRepo.FindSettlementByID(ctx, requestingUserID, settlementID); err != nil {
		return err
	}

	if err := s.authorizer.RequireRole(ctx, requestingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.settlementRepo.DeleteSettlement(ctx, requestingUserID, settlementID); err != nil {
		s.LogError(ctx, err, "Failed to delete settlement", slog.String("settlement_id", settlementID))
		return err
	}

	s.LogInfo(ctx, "Settlement deleted", slog.String("settlement_id", settlementID))
	return nil
}
