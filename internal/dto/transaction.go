package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// AllocationRequest is one fund slice of a transaction's amount.
type AllocationRequest struct {
	FundID string          `json:"fundID" binding:"required"`
	Ratio  decimal.Decimal `json:"ratio" binding:"required"`
}

// CreateTransactionRequest defines data for creating a transaction.
// Exactly one of FundID or Allocations must be provided: FundID is sugar for
// a single allocation with ratio 1.
type CreateTransactionRequest struct {
	AccountID   string              `json:"accountID" binding:"required"`
	TxDate      time.Time           `json:"txDate" binding:"required"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount" binding:"required"`
	Type        string              `json:"type" binding:"required,oneof=credit debit"`
	CategoryID  *string             `json:"categoryID"`
	FundID      *string             `json:"fundID"`
	Allocations []AllocationRequest `json:"allocations"`
}

// ToDomainAllocations converts the request's fund assignment to domain
// allocations. The single-fund sugar expands to one full-ratio allocation.
func (r CreateTransactionRequest) ToDomainAllocations() []domain.Allocation {
	if r.FundID != nil {
		return []domain.Allocation{{FundID: *r.FundID, Ratio: decimal.NewFromInt(1)}}
	}
	allocations := make([]domain.Allocation, len(r.Allocations))
	for i, a := range r.Allocations {
		allocations[i] = domain.Allocation{FundID: a.FundID, Ratio: a.Ratio}
	}
	return allocations
}

// UpdateTransactionRequest defines data allowed for updating a transaction.
// A nil Allocations keeps the existing fund assignment; a non-nil slice
// replaces it wholesale.
type UpdateTransactionRequest struct {
	TxDate      *time.Time          `json:"txDate"`
	Description *string             `json:"description"`
	Amount      *decimal.Decimal    `json:"amount"`
	Type        *string             `json:"type"`
	CategoryID  *string             `json:"categoryID"`
	Allocations []AllocationRequest `json:"allocations"`
}

// AllocationResponse is one fund slice of a transaction.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	FundID       string          `json:"fundID"`
	Ratio        decimal.Decimal `json:"ratio"`
}

// TransactionResponse defines data returned for a transaction.
type TransactionResponse struct {
	TransactionID string               `json:"transactionID"`
	AccountID     string               `json:"accountID"`
	TxDate        time.Time            `json:"txDate"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount"`
	Type          string               `json:"type"`
	CategoryID    *string              `json:"categoryID,omitempty"`
	Allocations   []AllocationResponse `json:"allocations,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ToTransactionResponse converts domain.Transaction to DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		TxDate:        t.TxDate,
		Description:   t.Description,
		Amount:        t.Amount,
		Type:          string(t.Type),
		CategoryID:    t.CategoryID,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
	if len(t.Allocations) > 0 {
		resp.Allocations = make([]AllocationResponse, len(t.Allocations))
		for i, a := range t.Allocations {
			resp.Allocations[i] = AllocationResponse{
				AllocationID: a.AllocationID,
				FundID:       a.FundID,
				Ratio:        a.Ratio,
			}
		}
	}
	return resp
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  *string    `form:"accountID"`
	CategoryID *string    `form:"categoryID"`
	FundID     *string    `form:"fundID"`
	Type       *string    `form:"type"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=20"`
	NextToken  *string    `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain.Transaction to DTO.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	list := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		list[i] = ToTransactionResponse(&t)
	}
	return ListTransactionsResponse{Transactions: list, NextToken: nextToken}
}
