package domain_test

import (
	"testing"
	"time"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAllocations(t *testing.T) {
	tests := []struct {
		name        string
		allocations []domain.Allocation
		wantErr     error
	}{
		{
			name: "single full allocation",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.NewFromInt(1)},
			},
			wantErr: nil,
		},
		{
			name: "two-way split",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.6)},
				{FundID: "fund_b", Ratio: decimal.NewFromFloat(0.4)},
			},
			wantErr: nil,
		},
		{
			name: "three-way split with repeating decimals inside tolerance",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.333333333)},
				{FundID: "fund_b", Ratio: decimal.NewFromFloat(0.333333333)},
				{FundID: "fund_c", Ratio: decimal.NewFromFloat(0.333333334)},
			},
			wantErr: nil,
		},
		{
			name:        "empty set rejected",
			allocations: []domain.Allocation{},
			wantErr:     domain.ErrNoAllocations,
		},
		{
			name:        "nil set rejected",
			allocations: nil,
			wantErr:     domain.ErrNoAllocations,
		},
		{
			name: "sum short by more than tolerance",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.5)},
				{FundID: "fund_b", Ratio: decimal.NewFromFloat(0.49)},
			},
			wantErr: domain.ErrRatioSum,
		},
		{
			name: "sum just outside tolerance",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.RequireFromString("0.999999998")},
			},
			wantErr: domain.ErrRatioSum,
		},
		{
			name: "sum exactly at tolerance boundary accepted",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.RequireFromString("0.999999999")},
			},
			wantErr: nil,
		},
		{
			name: "sum over 1 rejected",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.7)},
				{FundID: "fund_b", Ratio: decimal.NewFromFloat(0.5)},
			},
			wantErr: domain.ErrRatioSum,
		},
		{
			name: "zero ratio rejected",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.Zero},
				{FundID: "fund_b", Ratio: decimal.NewFromInt(1)},
			},
			wantErr: domain.ErrNonPositiveRatio,
		},
		{
			name: "duplicate fund rejected",
			allocations: []domain.Allocation{
				{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.5)},
				{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.5)},
			},
			wantErr: domain.ErrDuplicateFund,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAllocations(tt.allocations)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	base := domain.Transaction{
		TransactionID: "txn_1",
		AccountID:     "acc_1",
		TxDate:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromFloat(120.50),
		Type:          domain.Credit,
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base.Validate())
	})

	t.Run("missing account", func(t *testing.T) {
		tx := base
		tx.AccountID = ""
		assert.ErrorIs(t, tx.Validate(), domain.ErrMissingAccount)
	})

	t.Run("zero date", func(t *testing.T) {
		tx := base
		tx.TxDate = time.Time{}
		assert.ErrorIs(t, tx.Validate(), domain.ErrZeroTxDate)
	})

	t.Run("zero amount", func(t *testing.T) {
		tx := base
		tx.Amount = decimal.Zero
		assert.ErrorIs(t, tx.Validate(), domain.ErrNonPositiveAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		tx := base
		tx.Amount = decimal.NewFromInt(-5)
		assert.ErrorIs(t, tx.Validate(), domain.ErrNonPositiveAmount)
	})

	t.Run("bad type", func(t *testing.T) {
		tx := base
		tx.Type = "transfer"
		assert.ErrorIs(t, tx.Validate(), domain.ErrInvalidTxnType)
	})
}

func TestFundIDs(t *testing.T) {
	allocations := []domain.Allocation{
		{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.3)},
		{FundID: "fund_b", Ratio: decimal.NewFromFloat(0.3)},
		{FundID: "fund_a", Ratio: decimal.NewFromFloat(0.4)},
	}
	assert.Equal(t, []string{"fund_a", "fund_b"}, domain.FundIDs(allocations))
}
