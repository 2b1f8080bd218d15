package dto

import (
	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// --- Account DTOs ---

// CreateAccountRequest defines data for registering a bank account.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	BankName string `json:"bankName"`
	CBU      string `json:"cbu"`
}

// UpdateAccountRequest defines data allowed for updating an account.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	BankName *string `json:"bankName"`
	CBU      *string `json:"cbu"`
	IsActive *bool   `json:"isActive"`
}

// AccountResponse defines data returned for a bank account.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
	BankName  string `json:"bankName"`
	CBU       string `json:"cbu"`
	IsActive  bool   `json:"isActive"`
}

// ToAccountResponse converts domain.Account to DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Name:      a.Name,
		BankName:  a.BankName,
		CBU:       a.CBU,
		IsActive:  a.IsActive,
	}
}

// ListAccountsResponse wraps a list of bank accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to DTO.
func ToListAccountsResponse(as []domain.Account) ListAccountsResponse {
	list := make([]AccountResponse, len(as))
	for i, a := range as {
		list[i] = ToAccountResponse(&a)
	}
	return ListAccountsResponse{Accounts: list}
}

// --- Category DTOs ---

// CreateCategoryRequest defines data for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=ingreso egreso"`
}

// UpdateCategoryRequest defines data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Kind *string `json:"kind"`
}

// CategoryResponse defines data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
}

// ToCategoryResponse converts domain.Category to DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Kind: c.Kind}
}

// ListCategoriesResponse wraps a list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToListCategoriesResponse converts a slice of domain.Category to DTO.
func ToListCategoriesResponse(cs []domain.Category) ListCategoriesResponse {
	list := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCategoryResponse(&c)
	}
	return ListCategoriesResponse{Categories: list}
}

// --- Client DTOs ---

// CreateClientRequest defines data for registering a client.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	TaxID string `json:"taxID"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateClientRequest defines data allowed for updating a client.
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	TaxID    *string `json:"taxID"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// ClientResponse defines data returned for a client.
type ClientResponse struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	TaxID    string `json:"taxID"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
}

// ToClientResponse converts domain.Client to DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID: c.ClientID,
		Name:     c.Name,
		TaxID:    c.TaxID,
		Email:    c.Email,
		Phone:    c.Phone,
		IsActive: c.IsActive,
	}
}

// ListClientsResponse wraps a list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToListClientsResponse converts a slice of domain.Client to DTO.
func ToListClientsResponse(cs []domain.Client) ListClientsResponse {
	list := make([]ClientResponse, len(cs))
	for i, c := range cs {
		list[i] = ToClientResponse(&c)
	}
	return ListClientsResponse{Clients: list}
}

// --- Provider DTOs ---

// CreateProviderRequest defines data for registering a provider.
type CreateProviderRequest struct {
	Name  string `json:"name" binding:"required"`
	TaxID string `json:"taxID"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateProviderRequest defines data allowed for updating a provider.
type UpdateProviderRequest struct {
	Name     *string `json:"name"`
	TaxID    *string `json:"taxID"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// ProviderResponse defines data returned for a provider.
type ProviderResponse struct {
	ProviderID string `json:"providerID"`
	Name       string `json:"name"`
	TaxID      string `json:"taxID"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
}

// ToProviderResponse converts domain.Provider to DTO.
func ToProviderResponse(p *domain.Provider) ProviderResponse {
	return ProviderResponse{
		ProviderID: p.ProviderID,
		Name:       p.Name,
		TaxID:      p.TaxID,
		Email:      p.Email,
		Phone:      p.Phone,
		IsActive:   p.IsActive,
	}
}

// ListProvidersResponse wraps a list of providers.
type ListProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
}

// ToListProvidersResponse converts a slice of domain.Provider to DTO.
func ToListProvidersResponse(ps []domain.Provider) ListProvidersResponse {
	list := make([]ProviderResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProviderResponse(&p)
	}
	return ListProvidersResponse{Providers: list}
}
