package services

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// AccountSvcFacade defines operations over bank accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
}

// CategorySvcFacade defines operations over transaction categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string, requestingUserID string) error
}

// ClientSvcFacade defines operations over clients.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, includeInactive bool) ([]domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error)
}

// ProviderSvcFacade defines operations over providers.
type ProviderSvcFacade interface {
	CreateProvider(ctx context.Context, req dto.CreateProviderRequest, creatorUserID string) (*domain.Provider, error)
	GetProviderByID(ctx context.Context, providerID string) (*domain.Provider, error)
	ListProviders(ctx context.Context, includeInactive bool) ([]domain.Provider, error)
	UpdateProvider(ctx context.Context, providerID string, req dto.UpdateProviderRequest, requestingUserID string) (*domain.Provider, error)
}
