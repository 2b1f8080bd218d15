package services

import (
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Access first: every fund-scoped service depends on its gates.
	container.Access = NewAccessService(repos.AccessRepo)
	authorizer := container.Access.(portssvc.AccessAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo, authorizer)
	container.Fund = NewFundService(repos.FundRepo, authorizer)
	container.Transaction = NewTransactionService(repos.TransactionRepo, authorizer)
	container.Import = NewImportService(repos.TransactionRepo, authorizer)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, authorizer)
	container.Payment = NewPaymentService(repos.PaymentRepo, authorizer)
	container.Settlement = NewSettlementService(repos.SettlementRepo, repos.InvoiceRepo, authorizer)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Client = NewClientService(repos.ClientRepo)
	container.Provider = NewProviderService(repos.ProviderRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
