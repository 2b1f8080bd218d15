package services

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment visible to the user.
	GetPaymentByID(ctx context.Context, paymentID string, requestingUserID string) (*domain.Payment, error)

	// ListPayments retrieves a filtered, cursor-paginated page of payments
	// visible to the user.
	ListPayments(ctx context.Context, requestingUserID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreatePayment validates and persists a provider obligation. Requires
	// write scope on the payment's fund.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// RegisterPayment adds a paid amount to the obligation and recomputes
	// its status from the new totals.
	RegisterPayment(ctx context.Context, paymentID string, req dto.RegisterPaymentRequest, requestingUserID string) (*domain.Payment, error)

	// UpdatePayment patches payment details or status.
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, requestingUserID string) (*domain.Payment, error)

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, paymentID string, requestingUserID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
