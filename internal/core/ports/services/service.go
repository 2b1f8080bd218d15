package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
	Access      AccessSvcFacade
	Fund        FundSvcFacade
	Transaction TransactionSvcFacade
	Import      ImportSvcFacade
	Invoice     InvoiceSvcFacade
	Payment     PaymentSvcFacade
	Settlement  SettlementSvcFacade
	Account     AccountSvcFacade
	Category    CategorySvcFacade
	Client      ClientSvcFacade
	Provider    ProviderSvcFacade
}
