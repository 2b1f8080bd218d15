package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database row shape for bank transactions.
// Amounts use a precise decimal type, never floats.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	TxDate        time.Time       `json:"txDate"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"` // credit or debit
	CategoryID    *string         `json:"categoryID,omitempty"`
	AuditFields
}

// Allocation is the database row shape for transaction fund allocations.
type Allocation struct {
	AllocationID  string          `json:"allocationID"`
	TransactionID string          `json:"transactionID"`
	FundID        string          `json:"fundID"`
	Ratio         decimal.Decimal `json:"ratio"`
}
