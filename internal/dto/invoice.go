package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// CreateInvoiceRequest defines data for issuing an invoice.
type CreateInvoiceRequest struct {
	FundID      string          `json:"fundID" binding:"required"`
	ClientID    string          `json:"clientID" binding:"required"`
	Number      string          `json:"number" binding:"required"`
	IssueDate   time.Time       `json:"issueDate" binding:"required"`
	DueDate     *time.Time      `json:"dueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
	Notes       string          `json:"notes"`
}

// UpdateInvoiceRequest defines data allowed for updating an invoice.
type UpdateInvoiceRequest struct {
	Number      *string               `json:"number"`
	IssueDate   *time.Time            `json:"issueDate"`
	DueDate     *time.Time            `json:"dueDate"`
	TotalAmount *decimal.Decimal      `json:"totalAmount"`
	Status      *domain.InvoiceStatus `json:"status"`
	Notes       *string               `json:"notes"`
}

// InvoiceResponse defines data returned for an invoice. Net and VAT amounts
// are derived from the total at read time, never stored.
type InvoiceResponse struct {
	InvoiceID   string          `json:"invoiceID"`
	FundID      string          `json:"fundID"`
	ClientID    string          `json:"clientID"`
	Number      string          `json:"number"`
	IssueDate   time.Time       `json:"issueDate"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToInvoiceResponse converts domain.Invoice to DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		FundID:      inv.FundID,
		ClientID:    inv.ClientID,
		Number:      inv.Number,
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
		TotalAmount: inv.TotalAmount,
		NetAmount:   inv.NetAmount(),
		VATAmount:   inv.VATAmount(),
		Status:      string(inv.Status),
		Notes:       inv.Notes,
		CreatedAt:   inv.CreatedAt,
		CreatedBy:   inv.CreatedBy,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	FundID    *string    `form:"fundID"`
	ClientID  *string    `form:"clientID"`
	Status    *string    `form:"status"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListInvoicesResponse converts a page of domain.Invoice to DTO.
func ToListInvoicesResponse(invs []domain.Invoice, nextToken *string) ListInvoicesResponse {
	list := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		list[i] = ToInvoiceResponse(&inv)
	}
	return ListInvoicesResponse{Invoices: list, NextToken: nextToken}
}
