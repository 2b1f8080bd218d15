package services

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// FundReaderSvc defines read operations for fund data
type FundReaderSvc interface {
	// GetFundByID retrieves a fund visible to the requesting user.
	GetFundByID(ctx context.Context, fundID string, requestingUserID string) (*domain.Fund, error)

	// ListFunds retrieves the funds the requesting user can see.
	ListFunds(ctx context.Context, requestingUserID string, includeInactive bool) ([]domain.Fund, error)
}

// FundWriterSvc defines write operations for fund data
type FundWriterSvc interface {
	// CreateFund persists a new fund. Restricted to admin/owner holders.
	CreateFund(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.Fund, error)

	// UpdateFund updates fund details. Requires admin scope on the fund.
	UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest, requestingUserID string) (*domain.Fund, error)
}

// FundSvcFacade combines all fund-related service interfaces
type FundSvcFacade interface {
	FundReaderSvc
	FundWriterSvc
}
