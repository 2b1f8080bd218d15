package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccessRepo:      newPgxAccessRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		FundRepo:        newPgxFundRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		InvoiceRepo:     newPgxInvoiceRepository(dbPool),
		PaymentRepo:     newPgxPaymentRepository(dbPool),
		SettlementRepo:  newPgxSettlementRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		ClientRepo:      newPgxClientRepository(dbPool),
		ProviderRepo:    newPgxProviderRepository(dbPool),
	}
}
