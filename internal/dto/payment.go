package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// CreatePaymentRequest defines data for recording a provider obligation.
type CreatePaymentRequest struct {
	FundID      string          `json:"fundID" binding:"required"`
	ProviderID  string          `json:"providerID" binding:"required"`
	InvoiceRef  *string         `json:"invoiceRef"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
	DueDate     *time.Time      `json:"dueDate"`
	Notes       string          `json:"notes"`
}

// RegisterPaymentRequest records money paid against an obligation. The
// payment's status is recomputed from the new paid amount.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// UpdatePaymentRequest defines data allowed for updating a payment.
type UpdatePaymentRequest struct {
	InvoiceRef  *string               `json:"invoiceRef"`
	TotalAmount *decimal.Decimal      `json:"totalAmount"`
	DueDate     *time.Time            `json:"dueDate"`
	Status      *domain.PaymentStatus `json:"status"`
	Notes       *string               `json:"notes"`
}

// PaymentResponse defines data returned for a payment. RemainingAmount is
// derived at read time.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	FundID          string          `json:"fundID"`
	ProviderID      string          `json:"providerID"`
	InvoiceRef      *string         `json:"invoiceRef,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToPaymentResponse converts domain.Payment to DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		FundID:          p.FundID,
		ProviderID:      p.ProviderID,
		InvoiceRef:      p.InvoiceRef,
		TotalAmount:     p.TotalAmount,
		PaidAmount:      p.PaidAmount,
		RemainingAmount: p.RemainingAmount(),
		DueDate:         p.DueDate,
		Status:          string(p.Status),
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	FundID     *string `form:"fundID"`
	ProviderID *string `form:"providerID"`
	Status     *string `form:"status"`
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListPaymentsResponse converts a page of domain.Payment to DTO.
func ToListPaymentsResponse(ps []domain.Payment, nextToken *string) ListPaymentsResponse {
	list := make([]PaymentResponse, len(ps))
	for i, p := range ps {
		list[i] = ToPaymentResponse(&p)
	}
	return ListPaymentsResponse{Payments: list, NextToken: nextToken}
}
