package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the database row shape for invoices (facturas).
// Net and VAT are derived at read time and never stored.
type Invoice struct {
	InvoiceID   string          `json:"invoiceID"`
	FundID      string          `json:"fundID"`
	ClientID    string          `json:"clientID"`
	Number      string          `json:"number"`
	IssueDate   time.Time       `json:"issueDate"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	AuditFields
}

// Payment is the database row shape for provider payments.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	FundID      string          `json:"fundID"`
	ProviderID  string          `json:"providerID"`
	InvoiceRef  *string         `json:"invoiceRef,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	AuditFields
}
