package repositories

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// InvoiceFilter is the closed set of optional invoice list predicates.
type InvoiceFilter struct {
	ClientID *string
	FundID   *string
	Status   *domain.InvoiceStatus
}

// InvoiceReader defines read operations for invoices, filtered by the
// requesting user's fund visibility.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, filter InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// PaymentFilter is the closed set of optional payment list predicates.
type PaymentFilter struct {
	ProviderID *string
	FundID     *string
	Status     *domain.PaymentStatus
}

// PaymentReader defines read operations for payments, filtered by the
// requesting user's fund visibility.
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, userID, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID string, filter PaymentFilter, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
	UpdatePayment(ctx context.Context, payment domain.Payment) error
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
