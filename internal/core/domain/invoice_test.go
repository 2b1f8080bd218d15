package domain_test

import (
	"testing"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_DerivedAmounts(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		wantNet string
		wantVAT string
	}{
		{"round total", "121", "100", "21"},
		{"typical invoice", "40000.00", "33057.85", "6942.15"},
		{"small amount", "1.21", "1", "0.21"},
		{"zero", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := domain.Invoice{TotalAmount: decimal.RequireFromString(tt.total)}
			assert.True(t, inv.NetAmount().Equal(decimal.RequireFromString(tt.wantNet)),
				"net: got %s want %s", inv.NetAmount(), tt.wantNet)
			assert.True(t, inv.VATAmount().Equal(decimal.RequireFromString(tt.wantVAT)),
				"vat: got %s want %s", inv.VATAmount(), tt.wantVAT)
			// Net + VAT must reassemble the rounded total.
			assert.True(t, inv.NetAmount().Add(inv.VATAmount()).Equal(inv.TotalAmount.Round(2)))
		})
	}
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	assert.True(t, domain.InvoicePendiente.IsValid())
	assert.True(t, domain.InvoiceCobrado.IsValid())
	assert.True(t, domain.InvoiceBaja.IsValid())
	assert.False(t, domain.InvoiceStatus("Pagada").IsValid())
	assert.False(t, domain.InvoiceStatus("").IsValid())
}

func TestPayment_Validate(t *testing.T) {
	base := domain.Payment{
		TotalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.Zero,
		Status:      domain.PaymentPendiente,
	}

	t.Run("pending with zero paid", func(t *testing.T) {
		assert.NoError(t, base.Validate())
	})

	t.Run("partial", func(t *testing.T) {
		p := base
		p.PaidAmount = decimal.NewFromInt(400)
		p.Status = domain.PaymentParcial
		assert.NoError(t, p.Validate())
	})

	t.Run("paid in full", func(t *testing.T) {
		p := base
		p.PaidAmount = decimal.NewFromInt(1000)
		p.Status = domain.PaymentPagada
		assert.NoError(t, p.Validate())
	})

	t.Run("cancelled ignores amounts", func(t *testing.T) {
		p := base
		p.PaidAmount = decimal.NewFromInt(400)
		p.Status = domain.PaymentCancelada
		assert.NoError(t, p.Validate())
	})

	t.Run("paid exceeds total", func(t *testing.T) {
		p := base
		p.PaidAmount = decimal.NewFromInt(1001)
		assert.ErrorIs(t, p.Validate(), domain.ErrAmountExceedsPaid)
	})

	t.Run("pending with nonzero paid", func(t *testing.T) {
		p := base
		p.PaidAmount = decimal.NewFromInt(10)
		assert.ErrorIs(t, p.Validate(), domain.ErrStatusInconsistency)
	})

	t.Run("pagada with remaining balance", func(t *testing.T) {
		p := base
		p.PaidAmount = decimal.NewFromInt(999)
		p.Status = domain.PaymentPagada
		assert.ErrorIs(t, p.Validate(), domain.ErrStatusInconsistency)
	})
}

func TestPayment_RemainingAmount(t *testing.T) {
	p := domain.Payment{
		TotalAmount: decimal.RequireFromString("1500.75"),
		PaidAmount:  decimal.RequireFromString("500.25"),
	}
	assert.True(t, p.RemainingAmount().Equal(decimal.RequireFromString("1000.50")))
}

func TestAccessScope(t *testing.T) {
	assert.True(t, domain.ScopeAdmin.AtLeast(domain.ScopeWrite))
	assert.True(t, domain.ScopeWrite.AtLeast(domain.ScopeWrite))
	assert.False(t, domain.ScopeRead.AtLeast(domain.ScopeWrite))
	assert.Equal(t, domain.ScopeAdmin, domain.ScopeRead.Max(domain.ScopeAdmin))
	assert.Equal(t, domain.ScopeWrite, domain.ScopeWrite.Max(domain.ScopeRead))
	assert.False(t, domain.AccessScope("superuser").IsValid())
}
