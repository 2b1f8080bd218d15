package domain

// Account is a bank account bank transactions are imported against.
type Account struct {
	AccountID string `json:"accountID"` // Primary Key (UUID)
	Name      string `json:"name"`
	BankName  string `json:"bankName"`
	CBU       string `json:"cbu"` // Bank routing identifier; free-form
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// Category classifies transactions for reporting.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Kind       string `json:"kind"` // e.g. "ingreso", "egreso"
	AuditFields
}

// Client is a party invoices and settlements are issued to.
type Client struct {
	ClientID string `json:"clientID"` // Primary Key (UUID)
	Name     string `json:"name"`
	TaxID    string `json:"taxID"` // CUIT
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Provider is a party payments are made to.
type Provider struct {
	ProviderID string `json:"providerID"` // Primary Key (UUID)
	Name       string `json:"name"`
	TaxID      string `json:"taxID"` // CUIT
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
