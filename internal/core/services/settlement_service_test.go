package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/core/services"
	"github.com/fondosar/backoffice_api/internal/dto"
)

type MockSettlementRepository struct {
	mock.Mock
}

var _ portsrepo.SettlementRepositoryFacade = (*MockSettlementRepository)(nil)

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, userID, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, userID, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlements(ctx context.Context, userID string, clientID *string, limit int, nextToken *string) ([]domain.Settlement, *string, error) {
	args := m.Called(ctx, userID, clientID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Settlement), token, args.Error(2)
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockSettlementRepository) DeleteSettlement(ctx context.Context, actingUserID, settlementID string) error {
	args := m.Called(ctx, actingUserID, settlementID)
	return args.Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, userID string, filter portsrepo.InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Invoice), token, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Test Suite ---
type SettlementServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockSettlementRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.SettlementSvcFacade
	userID          string
	fundID          string
	clientID        string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettlementRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewSettlementService(suite.mockRepo, suite.mockInvoiceRepo, suite.mockAuthorizer)
	suite.userID = uuid.NewString()
	suite.fundID = uuid.NewString()
	suite.clientID = uuid.NewString()
}

func (suite *SettlementServiceTestSuite) createRequestWithInvoice(invoiceID string) dto.CreateSettlementRequest {
	return dto.CreateSettlementRequest{
		FundID:        suite.fundID,
		ClientID:      suite.clientID,
		PaymentMethod: "transferencia",
		IngresoBanco:  decimal.RequireFromString("1000.00"),
		Impositivo:    decimal.RequireFromString("50.00"),
		SettledAt:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Lines: []dto.SettlementLineRequest{
			{Kind: "invoice", Description: "Factura A-0001", Amount: decimal.RequireFromString("900.00"), InvoiceID: &invoiceID},
		},
	}
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := suite.createRequestWithInvoice(invoiceID)

	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.userID, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID, FundID: suite.fundID, Status: domain.InvoicePendiente}, nil).Once()
	suite.mockRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement")).Return(nil).Once()

	settlement, err := suite.service.CreateSettlement(ctx, req, suite.userID)

	suite.NoError(err)
	suite.NotNil(settlement)
	suite.Len(settlement.Lines, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_RejectsBajaInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := suite.createRequestWithInvoice(invoiceID)

	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.userID, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID, FundID: suite.fundID, Status: domain.InvoiceBaja}, nil).Once()

	settlement, err := suite.service.CreateSettlement(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(settlement)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_InvisibleInvoiceRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := suite.createRequestWithInvoice(invoiceID)

	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.userID, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateSettlement(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_NoInvoiceLines() {
	ctx := context.Background()
	req := suite.createRequestWithInvoice(uuid.NewString())
	req.Lines = []dto.SettlementLineRequest{
		{Kind: "expense", Description: "Gasto bancario", Amount: decimal.RequireFromString("10.00")},
	}

	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()

	_, err := suite.service.CreateSettlement(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestDeleteSettlement_RequiresAdminRole() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	existing := &domain.Settlement{SettlementID: settlementID, FundID: suite.fundID}

	suite.mockRepo.On("FindSettlementByID", ctx, suite.userID, settlementID).Return(existing, nil).Once()
	suite.mockAuthorizer.On("RequireRole", ctx, suite.userID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeleteSettlement(ctx, settlementID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteSettlement")
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestDeleteSettlement_AdminDeletes() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	existing := &domain.Settlement{SettlementID: settlementID, FundID: suite.fundID}

	suite.mockRepo.On("FindSettlementByID", ctx, suite.userID, settlementID).Return(existing, nil).Once()
	suite.mockAuthorizer.On("RequireRole", ctx, suite.userID, domain.RoleAdmin).Return(nil).Once()
	suite.mockRepo.On("DeleteSettlement", ctx, suite.userID, settlementID).Return(nil).Once()

	err := suite.service.DeleteSettlement(ctx, settlementID, suite.userID)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
