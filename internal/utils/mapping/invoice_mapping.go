package mapping

import (
	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:   d.InvoiceID,
		FundID:      d.FundID,
		ClientID:    d.ClientID,
		Number:      d.Number,
		IssueDate:   d.IssueDate,
		DueDate:     d.DueDate,
		TotalAmount: d.TotalAmount,
		Status:      string(d.Status),
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		FundID:      m.FundID,
		ClientID:    m.ClientID,
		Number:      m.Number,
		IssueDate:   m.IssueDate,
		DueDate:     m.DueDate,
		TotalAmount: m.TotalAmount,
		Status:      domain.InvoiceStatus(m.Status),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		FundID:      d.FundID,
		ProviderID:  d.ProviderID,
		InvoiceRef:  d.InvoiceRef,
		TotalAmount: d.TotalAmount,
		PaidAmount:  d.PaidAmount,
		DueDate:     d.DueDate,
		Status:      string(d.Status),
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		FundID:      m.FundID,
		ProviderID:  m.ProviderID,
		InvoiceRef:  m.InvoiceRef,
		TotalAmount: m.TotalAmount,
		PaidAmount:  m.PaidAmount,
		DueDate:     m.DueDate,
		Status:      domain.PaymentStatus(m.Status),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
