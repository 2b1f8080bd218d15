package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/dto"
)

// Catalog services cover the reference entities (accounts, categories,
// clients, providers). They carry no fund column, so reads are authenticated
// but not fund-scoped.

// --- Account ---

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new bank account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      req.Name,
		BankName:  req.BankName,
		CBU:       req.CBU,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_name", req.Name))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.CBU != nil {
		account.CBU = *req.CBU
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// --- Category ---

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if req.Kind != "ingreso" && req.Kind != "egreso" {
		return nil, fmt.Errorf("%w: category kind must be ingreso or egreso", apperrors.ErrValidation)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Kind:       req.Kind,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_name", req.Name))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Kind != nil {
		if *req.Kind != "ingreso" && *req.Kind != "egreso" {
			return nil, fmt.Errorf("%w: category kind must be ingreso or egreso", apperrors.ErrValidation)
		}
		category.Kind = *req.Kind
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = requestingUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, requestingUserID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID), slog.String("deleted_by", requestingUserID))
	return nil
}

// --- Client ---

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepository
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepository) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	now := time.Now()
	client := domain.Client{
		ClientID: uuid.NewString(),
		Name:     req.Name,
		TaxID:    req.TaxID,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("client_name", req.Name))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, includeInactive bool) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.TaxID != nil {
		client.TaxID = *req.TaxID
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = requestingUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// --- Provider ---

type providerService struct {
	BaseService
	providerRepo portsrepo.ProviderRepository
}

// NewProviderService creates a new provider service.
func NewProviderService(providerRepo portsrepo.ProviderRepository) portssvc.ProviderSvcFacade {
	return &providerService{providerRepo: providerRepo}
}

var _ portssvc.ProviderSvcFacade = (*providerService)(nil)

func (s *providerService) CreateProvider(ctx context.Context, req dto.CreateProviderRequest, creatorUserID string) (*domain.Provider, error) {
	now := time.Now()
	provider := domain.Provider{
		ProviderID: uuid.NewString(),
		Name:       req.Name,
		TaxID:      req.TaxID,
		Email:      req.Email,
		Phone:      req.Phone,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.providerRepo.SaveProvider(ctx, provider); err != nil {
		s.LogError(ctx, err, "Failed to save provider", slog.String("provider_name", req.Name))
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	s.LogInfo(ctx, "Provider created", slog.String("provider_id", provider.ProviderID))
	return &provider, nil
}

func (s *providerService) GetProviderByID(ctx context.Context, providerID string) (*domain.Provider, error) {
	return s.providerRepo.FindProviderByID(ctx, providerID)
}

func (s *providerService) ListProviders(ctx context.Context, includeInactive bool) ([]domain.Provider, error) {
	providers, err := s.providerRepo.ListProviders(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	if providers == nil {
		providers = []domain.Provider{}
	}
	return providers, nil
}

func (s *providerService) UpdateProvider(ctx context.Context, providerID string, req dto.UpdateProviderRequest, requestingUserID string) (*domain.Provider, error) {
	provider, err := s.providerRepo.FindProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		provider.Name = *req.Name
	}
	if req.TaxID != nil {
		provider.TaxID = *req.TaxID
	}
	if req.Email != nil {
		provider.Email = *req.Email
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}
	if req.IsActive != nil {
		provider.IsActive = *req.IsActive
	}
	provider.LastUpdatedAt = time.Now()
	provider.LastUpdatedBy = requestingUserID

	if err := s.providerRepo.UpdateProvider(ctx, *provider); err != nil {
		s.LogError(ctx, err, "Failed to update provider", slog.String("provider_id", providerID))
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	return provider, nil
}
