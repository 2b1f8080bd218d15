package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// SettlementLineKind distinguishes the five line-item collections a
// settlement (liquidación) carries.
type SettlementLineKind string

const (
	LineInvoice         SettlementLineKind = "invoice"
	LineExpense         SettlementLineKind = "expense"
	LineWork            SettlementLineKind = "work"
	LinePositiveBalance SettlementLineKind = "positive_balance"
	LineNegativeBalance SettlementLineKind = "negative_balance"
)

// IsValid reports whether k is a known line kind.
func (k SettlementLineKind) IsValid() bool {
	switch k {
	case LineInvoice, LineExpense, LineWork, LinePositiveBalance, LineNegativeBalance:
		return true
	}
	return false
}

// SettlementLine is one row of a settlement's line-item collections.
// Invoice lines may reference the invoice they settle.
type SettlementLine struct {
	LineID       string             `json:"lineID"` // Primary Key (UUID)
	SettlementID string             `json:"settlementID"`
	Kind         SettlementLineKind `json:"kind"`
	Description  string             `json:"description"`
	Amount       decimal.Decimal    `json:"amount"`
	InvoiceID    *string            `json:"invoiceID,omitempty"` // Only for invoice lines
}

// Settlement is a computed financial summary document for a client/fund pair.
// TotalFinal is never stored; it is a pure function of the header amounts and
// the line collections, recomputed on every read.
type Settlement struct {
	SettlementID  string          `json:"settlementID"` // Primary Key (UUID)
	FundID        string          `json:"fundID"`
	ClientID      string          `json:"clientID"`
	PaymentMethod string          `json:"paymentMethod"`
	IngresoBanco  decimal.Decimal `json:"ingresoBanco"`
	Impositivo    decimal.Decimal `json:"impositivo"`
	Comments      string          `json:"comments"`
	SettledAt     time.Time       `json:"settledAt"`
	AuditFields
	Lines []SettlementLine `json:"lines,omitempty"`
}

var ErrNoInvoiceLines = errors.New("settlement requires at least one invoice line")

// TotalFinal computes
//
//	ingreso_banco - impositivo - sum(expenses) - sum(work)
//	  - sum(negative_balances) + sum(positive_balances)
//
// rounded to 2 decimals. Idempotent over unchanged lines.
func (s Settlement) TotalFinal() decimal.Decimal {
	total := s.IngresoBanco.Sub(s.Impositivo)
	for _, line := range s.Lines {
		switch line.Kind {
		case LineExpense, LineWork, LineNegativeBalance:
			total = total.Sub(line.Amount)
		case LinePositiveBalance:
			total = total.Add(line.Amount)
		}
		// Invoice lines document what is being settled; they do not enter
		// the total.
	}
	return total.Round(2)
}

// Validate checks creation invariants: at least one invoice line, known line
// kinds, non-negative line amounts.
func (s Settlement) Validate() error {
	invoiceLines := 0
	for _, line := range s.Lines {
		if !line.Kind.IsValid() {
			return ErrValidationLineKind
		}
		if line.Amount.IsNegative() {
			return ErrNegativeLineAmount
		}
		if line.Kind == LineInvoice {
			invoiceLines++
		}
	}
	if invoiceLines == 0 {
		return ErrNoInvoiceLines
	}
	return nil
}

var (
	ErrValidationLineKind = errors.New("unknown settlement line kind")
	ErrNegativeLineAmount = errors.New("settlement line amount cannot be negative")
)
