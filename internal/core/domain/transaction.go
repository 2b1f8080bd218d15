package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a bank transaction is money in or out.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Credit || t == Debit
}

// Transaction represents a single bank movement on an account, split across
// one or more funds by its allocations.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	AccountID     string          `json:"accountID"`     // FK -> accounts (Not Null)
	TxDate        time.Time       `json:"txDate"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // Unsigned; sign carried by Type
	Type          TransactionType `json:"type"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	AuditFields
	Allocations []Allocation `json:"allocations,omitempty"` // Loaded separately on detail reads
}

// Allocation assigns a fraction of one transaction's amount to a fund.
// Allocations are replaced wholesale on fund reassignment, never patched.
type Allocation struct {
	AllocationID  string          `json:"allocationID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	FundID        string          `json:"fundID"`
	Ratio         decimal.Decimal `json:"ratio"`
}

// ratioTolerance is the permitted deviation of an allocation set's ratio sum
// from exactly 1.
var ratioTolerance = decimal.New(1, -9) // 1e-9

var (
	ErrNoAllocations       = errors.New("transaction requires at least one allocation")
	ErrRatioSum            = errors.New("allocation ratios must sum to 1")
	ErrNonPositiveRatio    = errors.New("allocation ratio must be positive")
	ErrDuplicateFund       = errors.New("fund referenced more than once in allocations")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInvalidTxnType      = errors.New("type must be credit or debit")
	ErrMissingAccount      = errors.New("account is required")
	ErrZeroTxDate          = errors.New("transaction date is required")
	ErrAmountExceedsPaid   = errors.New("paid amount cannot exceed total amount")
	ErrStatusInconsistency = errors.New("status inconsistent with amounts")
)

// ValidateAllocations checks the invariants of an allocation set: non-empty,
// positive ratios, no fund listed twice, and ratios summing to 1 within the
// tolerance. It does not check fund access; that is the caller's gate.
func ValidateAllocations(allocations []Allocation) error {
	if len(allocations) == 0 {
		return ErrNoAllocations
	}
	seen := make(map[string]struct{}, len(allocations))
	sum := decimal.Zero
	for _, a := range allocations {
		if !a.Ratio.IsPositive() {
			return ErrNonPositiveRatio
		}
		if _, dup := seen[a.FundID]; dup {
			return ErrDuplicateFund
		}
		seen[a.FundID] = struct{}{}
		sum = sum.Add(a.Ratio)
	}
	if sum.Sub(decimal.NewFromInt(1)).Abs().Cmp(ratioTolerance) > 0 {
		return ErrRatioSum
	}
	return nil
}

// Validate checks the transaction's own invariants (not its allocations).
func (t Transaction) Validate() error {
	if t.AccountID == "" {
		return ErrMissingAccount
	}
	if t.TxDate.IsZero() {
		return ErrZeroTxDate
	}
	if !t.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidTxnType
	}
	return nil
}

// FundIDs returns the distinct funds referenced by the allocation set.
func FundIDs(allocations []Allocation) []string {
	ids := make([]string, 0, len(allocations))
	seen := make(map[string]struct{}, len(allocations))
	for _, a := range allocations {
		if _, ok := seen[a.FundID]; ok {
			continue
		}
		seen[a.FundID] = struct{}{}
		ids = append(ids, a.FundID)
	}
	return ids
}
