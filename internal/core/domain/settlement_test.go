package domain_test

import (
	"testing"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func settlementFixture() domain.Settlement {
	return domain.Settlement{
		SettlementID:  "liq_1",
		FundID:        "fund_a",
		ClientID:      "cli_1",
		PaymentMethod: "transferencia",
		IngresoBanco:  decimal.NewFromFloat(10000),
		Impositivo:    decimal.NewFromFloat(350.50),
		Lines: []domain.SettlementLine{
			{Kind: domain.LineInvoice, Amount: decimal.NewFromFloat(10000), InvoiceID: strPtr("inv_1")},
			{Kind: domain.LineExpense, Amount: decimal.NewFromFloat(1200.25), Description: "fletes"},
			{Kind: domain.LineWork, Amount: decimal.NewFromFloat(800)},
			{Kind: domain.LineNegativeBalance, Amount: decimal.NewFromFloat(99.99)},
			{Kind: domain.LinePositiveBalance, Amount: decimal.NewFromFloat(50)},
		},
	}
}

func TestSettlement_TotalFinal(t *testing.T) {
	s := settlementFixture()
	// 10000 - 350.50 - 1200.25 - 800 - 99.99 + 50 = 7599.26
	assert.True(t, s.TotalFinal().Equal(decimal.NewFromFloat(7599.26)),
		"got %s", s.TotalFinal())
}

func TestSettlement_TotalFinal_Idempotent(t *testing.T) {
	s := settlementFixture()
	first := s.TotalFinal()
	second := s.TotalFinal()
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.String(), second.String())
}

func TestSettlement_TotalFinal_InvoiceLinesExcluded(t *testing.T) {
	s := settlementFixture()
	s.Lines = append(s.Lines, domain.SettlementLine{
		Kind: domain.LineInvoice, Amount: decimal.NewFromFloat(99999),
	})
	assert.True(t, s.TotalFinal().Equal(decimal.NewFromFloat(7599.26)))
}

func TestSettlement_TotalFinal_RoundsToTwoDecimals(t *testing.T) {
	s := domain.Settlement{
		IngresoBanco: decimal.RequireFromString("100.005"),
		Impositivo:   decimal.Zero,
	}
	assert.Equal(t, "100.01", s.TotalFinal().String())
}

func TestSettlement_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, settlementFixture().Validate())
	})

	t.Run("no invoice lines", func(t *testing.T) {
		s := settlementFixture()
		s.Lines = []domain.SettlementLine{
			{Kind: domain.LineExpense, Amount: decimal.NewFromInt(10)},
		}
		assert.ErrorIs(t, s.Validate(), domain.ErrNoInvoiceLines)
	})

	t.Run("empty lines", func(t *testing.T) {
		s := settlementFixture()
		s.Lines = nil
		assert.ErrorIs(t, s.Validate(), domain.ErrNoInvoiceLines)
	})

	t.Run("unknown line kind", func(t *testing.T) {
		s := settlementFixture()
		s.Lines[1].Kind = "bonus"
		assert.ErrorIs(t, s.Validate(), domain.ErrValidationLineKind)
	})

	t.Run("negative line amount", func(t *testing.T) {
		s := settlementFixture()
		s.Lines[2].Amount = decimal.NewFromInt(-1)
		assert.ErrorIs(t, s.Validate(), domain.ErrNegativeLineAmount)
	})
}

func strPtr(s string) *string {
	return &s
}
