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

// invoiceService handles business logic for client invoices. Net and VAT
// amounts are derived on the domain type, never stored.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	authorizer  portssvc.AccessAuthorizerSvc
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, authorizer portssvc.AccessAuthorizerSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{invoiceRepo: invoiceRepo, authorizer: authorizer}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GetInvoiceByID retrieves an invoice visible to the user.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, requestingUserID, invoiceID)
}

// ListInvoices retrieves a filtered, cursor-paginated page of invoices
// visible to the user.
func (s *invoiceService) ListInvoices(ctx context.Context, requestingUserID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.InvoiceFilter{
		ClientID: params.ClientID,
		FundID:   params.FundID,
	}
	if params.Status != nil {
		status := domain.InvoiceStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, requestingUserID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := dto.ToListInvoicesResponse(invoices, nextToken)
	return &resp, nil
}

// CreateInvoice validates and persists an invoice. Requires write scope on
// the invoice's fund.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	if err := s.authorizer.RequireFundScope(ctx, creatorUserID, []string{req.FundID}, domain.ScopeWrite); err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		FundID:      req.FundID,
		ClientID:    req.ClientID,
		Number:      req.Number,
		IssueDate:   req.IssueDate,
		DueDate:     req.DueDate,
		TotalAmount: req.TotalAmount,
		Status:      domain.InvoicePendiente,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", req.Number))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", invoice.InvoiceID))
	return &invoice, nil
}

// UpdateInvoice patches invoice details or status. Requires write scope on
// the invoice's fund.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, requestingUserID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, []string{invoice.FundID}, domain.ScopeWrite); err != nil {
		return nil, err
	}

	if req.Number != nil {
		invoice.Number = *req.Number
	}
	if req.IssueDate != nil {
		invoice.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.TotalAmount != nil {
		if !req.TotalAmount.IsPositive() {
			return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
		}
		invoice.TotalAmount = *req.TotalAmount
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *req.Status)
		}
		invoice.Status = *req.Status
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = requestingUserID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return invoice, nil
}

// DeleteInvoice removes an invoice. Requires write scope on its fund.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, requestingUserID, invoiceID)
	if err != nil {
		return err
	}

	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, []string{invoice.FundID}, domain.ScopeWrite); err != nil {
		return err
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return err
	}

	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}
