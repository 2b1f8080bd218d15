package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice (factura).
type InvoiceStatus string

const (
	InvoicePendiente InvoiceStatus = "Pendiente"
	InvoiceCobrado   InvoiceStatus = "Cobrado"
	InvoiceBaja      InvoiceStatus = "Baja"
)

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoicePendiente, InvoiceCobrado, InvoiceBaja:
		return true
	}
	return false
}

// vatFactor is the Argentine VAT divisor: total = net * 1.21.
var vatFactor = decimal.NewFromFloat(1.21)

// Invoice represents a factura issued to a client against a fund.
type Invoice struct {
	InvoiceID   string          `json:"invoiceID"` // Primary Key (UUID)
	FundID      string          `json:"fundID"`
	ClientID    string          `json:"clientID"`
	Number      string          `json:"number"`
	IssueDate   time.Time       `json:"issueDate"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      InvoiceStatus   `json:"status"`
	Notes       string          `json:"notes"`
	AuditFields
}

// NetAmount derives the pre-VAT amount (total / 1.21), rounded to 2 decimals.
// Never persisted; always recomputed at the read boundary.
func (i Invoice) NetAmount() decimal.Decimal {
	return i.TotalAmount.Div(vatFactor).Round(2)
}

// VATAmount derives the VAT component (total - net), rounded to 2 decimals.
func (i Invoice) VATAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.NetAmount()).Round(2)
}
