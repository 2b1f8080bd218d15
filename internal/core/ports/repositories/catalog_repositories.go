package repositories

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// Catalog entities (accounts, categories, clients, providers) carry no fund
// column, so their reads are authenticated but not fund-scoped.

// AccountRepository defines CRUD for bank accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// CategoryRepository defines CRUD for transaction categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ClientRepository defines CRUD for clients.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, includeInactive bool) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
}

// ProviderRepository defines CRUD for providers.
type ProviderRepository interface {
	SaveProvider(ctx context.Context, provider domain.Provider) error
	FindProviderByID(ctx context.Context, providerID string) (*domain.Provider, error)
	ListProviders(ctx context.Context, includeInactive bool) ([]domain.Provider, error)
	UpdateProvider(ctx context.Context, provider domain.Provider) error
}
