package services

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// SettlementReaderSvc defines read operations for settlement data
type SettlementReaderSvc interface {
	// GetSettlementByID retrieves a settlement visible to the user, with
	// all line collections loaded.
	GetSettlementByID(ctx context.Context, settlementID string, requestingUserID string) (*domain.Settlement, error)

	// ListSettlements retrieves a cursor-paginated page of settlements
	// visible to the user, optionally restricted to one client.
	ListSettlements(ctx context.Context, requestingUserID string, params dto.ListSettlementsParams) (*dto.ListSettlementsResponse, error)
}

// SettlementWriterSvc defines write operations for settlement data
type SettlementWriterSvc interface {
	// CreateSettlement validates and persists a settlement with its lines
	// in one database transaction. Requires write scope on the fund.
	CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest, creatorUserID string) (*domain.Settlement, error)

	// DeleteSettlement removes a settlement and its lines.
	DeleteSettlement(ctx context.Context, settlementID string, requestingUserID string) error
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementWriterSvc
}
