package repositories

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// FundReader defines read operations for fund data. List and detail reads
// are always filtered by the requesting user's effective access.
type FundReader interface {
	// FindFundByID retrieves a fund visible to the user. Absent and
	// not-visible both return ErrNotFound.
	FindFundByID(ctx context.Context, userID, fundID string) (*domain.Fund, error)

	// ListFunds retrieves every fund the user can see.
	ListFunds(ctx context.Context, userID string, includeInactive bool) ([]domain.Fund, error)
}

// FundWriter defines write operations for fund data.
type FundWriter interface {
	// SaveFund persists a new fund.
	SaveFund(ctx context.Context, fund domain.Fund) error

	// UpdateFund updates name/description/active flag.
	UpdateFund(ctx context.Context, fund domain.Fund) error
}

// FundRepositoryFacade combines all fund-related repository interfaces
type FundRepositoryFacade interface {
	FundReader
	FundWriter
}
