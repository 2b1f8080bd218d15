package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// paymentService handles business logic for provider payments. Status is
// always recomputed from the paid/total amounts so the two never drift.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	authorizer  portssvc.AccessAuthorizerSvc
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, authorizer portssvc.AccessAuthorizerSvc) portssvc.PaymentSvcFacade {
	return &paymentService{paymentRepo: paymentRepo, authorizer: authorizer}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// GetPaymentByID retrieves a payment visible to the user.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string, requestingUserID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, requestingUserID, paymentID)
}

// ListPayments retrieves a filtered, cursor-paginated page of payments
// visible to the user.
func (s *paymentService) ListPayments(ctx context.Context, requestingUserID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.PaymentFilter{
		ProviderID: params.ProviderID,
		FundID:     params.FundID,
	}
	if params.Status != nil {
		status := domain.PaymentStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}

	payments, nextToken, err := s.paymentRepo.ListPayments(ctx, requestingUserID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	resp := dto.ToListPaymentsResponse(payments, nextToken)
	return &resp, nil
}

// CreatePayment validates and persists a provider obligation. Requires write
// scope on the payment's fund.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	if err := s.authorizer.RequireFundScope(ctx, creatorUserID, []string{req.FundID}, domain.ScopeWrite); err != nil {
		return nil, err
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		FundID:      req.FundID,
		ProviderID:  req.ProviderID,
		InvoiceRef:  req.InvoiceRef,
		TotalAmount: req.TotalAmount,
		PaidAmount:  decimal.Zero,
		DueDate:     req.DueDate,
		Status:      domain.PaymentPendiente,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := payment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("provider_id", req.ProviderID))
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.LogInfo(ctx, "Payment created", slog.String("payment_id", payment.PaymentID))
	return &payment, nil
}

// RegisterPayment adds a paid amount to the obligation and recomputes its
// status. Paying past the total and paying a cancelled obligation are
// validation errors.
func (s *paymentService) RegisterPayment(ctx context.Context, paymentID string, req dto.RegisterPaymentRequest, requestingUserID string) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, requestingUserID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, []string{payment.FundID}, domain.ScopeWrite); err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentCancelada {
		return nil, fmt.Errorf("%w: cannot register payment on a cancelled obligation", apperrors.ErrValidation)
	}

	newPaid := payment.PaidAmount.Add(req.Amount)
	if newPaid.GreaterThan(payment.TotalAmount) {
		return nil, fmt.Errorf("%w: paid amount cannot exceed total amount", apperrors.ErrValidation)
	}

	payment.PaidAmount = newPaid
	payment.Status = statusForAmounts(newPaid, payment.TotalAmount)
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = requestingUserID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to register payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to register payment: %w", err)
	}

	s.LogInfo(ctx, "Payment registered", slog.String("payment_id", paymentID), slog.String("status", string(payment.Status)))
	return payment, nil
}

// UpdatePayment patches payment details or status.
func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, requestingUserID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, requestingUserID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, []string{payment.FundID}, domain.ScopeWrite); err != nil {
		return nil, err
	}

	if req.InvoiceRef != nil {
		payment.InvoiceRef = req.InvoiceRef
	}
	if req.TotalAmount != nil {
		payment.TotalAmount = *req.TotalAmount
	}
	if req.DueDate != nil {
		payment.DueDate = req.DueDate
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}

	// Cancellation is terminal as-is; everything else must stay consistent
	// with the amounts.
	if payment.Status != domain.PaymentCancelada {
		payment.Status = statusForAmounts(payment.PaidAmount, payment.TotalAmount)
	}
	if err := payment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = requestingUserID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return payment, nil
}

// DeletePayment removes a payment. Requires write scope on its fund.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, requestingUserID string) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, requestingUserID, paymentID)
	if err != nil {
		return err
	}

	if err := s.authorizer.RequireFundScope(ctx, requestingUserID, []string{payment.FundID}, domain.ScopeWrite); err != nil {
		return err
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return err
	}

	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// statusForAmounts derives the payment status implied by the amounts.
func statusForAmounts(paid, total decimal.Decimal) domain.PaymentStatus {
	switch {
	case paid.IsZero():
		return domain.PaymentPendiente
	case paid.Equal(total):
		return domain.PaymentPagada
	default:
		return domain.PaymentParcial
	}
}
