package repositories

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// SettlementReader defines read operations for settlements. Lines are always
// reloaded with the header so derived totals come from current rows.
type SettlementReader interface {
	// FindSettlementByID retrieves a settlement visible to the user with
	// all line collections loaded.
	FindSettlementByID(ctx context.Context, userID, settlementID string) (*domain.Settlement, error)

	// ListSettlements retrieves headers visible to the user, optionally
	// restricted to one client, with lines loaded for total derivation.
	ListSettlements(ctx context.Context, userID string, clientID *string, limit int, nextToken *string) ([]domain.Settlement, *string, error)
}

// SettlementWriter defines write operations for settlements. Header and all
// five line collections persist in one database transaction.
type SettlementWriter interface {
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error
	DeleteSettlement(ctx context.Context, actingUserID, settlementID string) error
}

// SettlementRepositoryFacade combines all settlement repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
