package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment to a provider.
type PaymentStatus string

const (
	PaymentPendiente PaymentStatus = "Pendiente"
	PaymentParcial   PaymentStatus = "Parcial"
	PaymentPagada    PaymentStatus = "Pagada"
	PaymentCancelada PaymentStatus = "Cancelada"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPendiente, PaymentParcial, PaymentPagada, PaymentCancelada:
		return true
	}
	return false
}

// Payment represents an obligation to a provider against a fund, optionally
// linked to one of the provider's invoices.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	FundID      string          `json:"fundID"`
	ProviderID  string          `json:"providerID"`
	InvoiceRef  *string         `json:"invoiceRef,omitempty"` // Free-form provider invoice number
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Status      PaymentStatus   `json:"status"`
	Notes       string          `json:"notes"`
	AuditFields
}

// RemainingAmount derives the outstanding balance, rounded to 2 decimals.
// Never persisted; recomputed at every read.
func (p Payment) RemainingAmount() decimal.Decimal {
	return p.TotalAmount.Sub(p.PaidAmount).Round(2)
}

// Validate checks amount and status consistency. Cancelled payments are
// exempt from the amount/status coupling; they are terminal as-is.
func (p Payment) Validate() error {
	if !p.TotalAmount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if p.PaidAmount.IsNegative() || p.PaidAmount.GreaterThan(p.TotalAmount) {
		return ErrAmountExceedsPaid
	}
	if !p.Status.IsValid() {
		return ErrStatusInconsistency
	}
	if p.Status == PaymentCancelada {
		return nil
	}
	switch {
	case p.PaidAmount.IsZero():
		if p.Status != PaymentPendiente {
			return ErrStatusInconsistency
		}
	case p.PaidAmount.Equal(p.TotalAmount):
		if p.Status != PaymentPagada {
			return ErrStatusInconsistency
		}
	default:
		if p.Status != PaymentParcial {
			return ErrStatusInconsistency
		}
	}
	return nil
}
