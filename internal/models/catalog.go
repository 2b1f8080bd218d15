package models

// Account is the database row shape for bank accounts.
type Account struct {
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
	BankName  string `json:"bankName"`
	CBU       string `json:"cbu"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// Category is the database row shape for transaction categories.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	AuditFields
}

// Client is the database row shape for clients.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	TaxID    string `json:"taxID"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Provider is the database row shape for providers.
type Provider struct {
	ProviderID string `json:"providerID"`
	Name       string `json:"name"`
	TaxID      string `json:"taxID"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
