package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is the database row shape for settlement (liquidación) headers.
// total_final has no column; it is recomputed from lines on every read.
type Settlement struct {
	SettlementID  string          `json:"settlementID"`
	FundID        string          `json:"fundID"`
	ClientID      string          `json:"clientID"`
	PaymentMethod string          `json:"paymentMethod"`
	IngresoBanco  decimal.Decimal `json:"ingresoBanco"`
	Impositivo    decimal.Decimal `json:"impositivo"`
	Comments      string          `json:"comments"`
	SettledAt     time.Time       `json:"settledAt"`
	AuditFields
}

// SettlementLine is the database row shape for settlement line items. One
// table holds all five collections, discriminated by kind.
type SettlementLine struct {
	LineID       string          `json:"lineID"`
	SettlementID string          `json:"settlementID"`
	Kind         string          `json:"kind"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	InvoiceID    *string         `json:"invoiceID,omitempty"`
}
