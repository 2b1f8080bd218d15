package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccessRepo      AccessRepositoryFacade
	UserRepo        UserRepositoryFacade
	FundRepo        FundRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	InvoiceRepo     InvoiceRepositoryFacade
	PaymentRepo     PaymentRepositoryFacade
	SettlementRepo  SettlementRepositoryFacade
	AccountRepo     AccountRepository
	CategoryRepo    CategoryRepository
	ClientRepo      ClientRepository
	ProviderRepo    ProviderRepository
}
