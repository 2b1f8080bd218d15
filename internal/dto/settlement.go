package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// SettlementLineRequest is one line item of a settlement being created.
// InvoiceID is only meaningful for invoice lines.
type SettlementLineRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=invoice expense work positive_balance negative_balance"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	InvoiceID   *string         `json:"invoiceID"`
}

// CreateSettlementRequest defines data for creating a settlement.
type CreateSettlementRequest struct {
	FundID        string                  `json:"fundID" binding:"required"`
	ClientID      string                  `json:"clientID" binding:"required"`
	PaymentMethod string                  `json:"paymentMethod"`
	IngresoBanco  decimal.Decimal         `json:"ingresoBanco" binding:"required"`
	Impositivo    decimal.Decimal         `json:"impositivo"`
	Comments      string                  `json:"comments"`
	SettledAt     time.Time               `json:"settledAt" binding:"required"`
	Lines         []SettlementLineRequest `json:"lines" binding:"required,dive"`
}

// ToDomainLines converts the request's line items to domain lines.
func (r CreateSettlementRequest) ToDomainLines() []domain.SettlementLine {
	lines := make([]domain.SettlementLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.SettlementLine{
			Kind:        domain.SettlementLineKind(l.Kind),
			Description: l.Description,
			Amount:      l.Amount,
			InvoiceID:   l.InvoiceID,
		}
	}
	return lines
}

// SettlementLineResponse is one line item of a settlement.
type SettlementLineResponse struct {
	LineID      string          `json:"lineID"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
}

// SettlementResponse defines data returned for a settlement. TotalFinal is
// recomputed from the header amounts and lines on every read.
type SettlementResponse struct {
	SettlementID  string                   `json:"settlementID"`
	FundID        string                   `json:"fundID"`
	ClientID      string                   `json:"clientID"`
	PaymentMethod string                   `json:"paymentMethod"`
	IngresoBanco  decimal.Decimal          `json:"ingresoBanco"`
	Impositivo    decimal.Decimal          `json:"impositivo"`
	TotalFinal    decimal.Decimal          `json:"totalFinal"`
	Comments      string                   `json:"comments"`
	SettledAt     time.Time                `json:"settledAt"`
	Lines         []SettlementLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	CreatedBy     string                   `json:"createdBy"`
}

// ToSettlementResponse converts domain.Settlement to DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	resp := SettlementResponse{
		SettlementID:  s.SettlementID,
		FundID:        s.FundID,
		ClientID:      s.ClientID,
		PaymentMethod: s.PaymentMethod,
		IngresoBanco:  s.IngresoBanco,
		Impositivo:    s.Impositivo,
		TotalFinal:    s.TotalFinal(),
		Comments:      s.Comments,
		SettledAt:     s.SettledAt,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
	}
	if len(s.Lines) > 0 {
		resp.Lines = make([]SettlementLineResponse, len(s.Lines))
		for i, l := range s.Lines {
			resp.Lines[i] = SettlementLineResponse{
				LineID:      l.LineID,
				Kind:        string(l.Kind),
				Description: l.Description,
				Amount:      l.Amount,
				InvoiceID:   l.InvoiceID,
			}
		}
	}
	return resp
}

// ListSettlementsParams defines query parameters for listing settlements.
type ListSettlementsParams struct {
	ClientID  *string `form:"clientID"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListSettlementsResponse wraps a page of settlements.
type ListSettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToListSettlementsResponse converts a page of domain.Settlement to DTO.
func ToListSettlementsResponse(ss []domain.Settlement, nextToken *string) ListSettlementsResponse {
	list := make([]SettlementResponse, len(ss))
	for i, s := range ss {
		list[i] = ToSettlementResponse(&s)
	}
	return ListSettlementsResponse{Settlements: list, NextToken: nextToken}
}
