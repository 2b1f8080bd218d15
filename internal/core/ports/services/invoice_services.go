package services

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice visible to the user.
	GetInvoiceByID(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error)

	// ListInvoices retrieves a filtered, cursor-paginated page of invoices
	// visible to the user.
	ListInvoices(ctx context.Context, requestingUserID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice validates and persists an invoice. Requires write scope
	// on the invoice's fund.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoice patches invoice details or status.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice.
	DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
