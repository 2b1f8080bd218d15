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

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) FindAllocationsByTransactionID(ctx context.Context, transactionID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, allocations []domain.Allocation) error {
	args := m.Called(ctx, txn, allocations)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, newAllocations []domain.Allocation) error {
	args := m.Called(ctx, txn, newAllocations)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, actingUserID, transactionID string) error {
	args := m.Called(ctx, actingUserID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactionsBatch(ctx context.Context, actingUserID string, txns []domain.Transaction, allocations []domain.Allocation) error {
	args := m.Called(ctx, actingUserID, txns, allocations)
	return args.Error(0)
}

// --- Mock Authorizer ---
type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.AccessAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) RequireRole(ctx context.Context, userID, roleName string) error {
	args := m.Called(ctx, userID, roleName)
	return args.Error(0)
}

func (m *MockAuthorizer) RequireFundScope(ctx context.Context, userID string, fundIDs []string, minScope domain.AccessScope) error {
	args := m.Called(ctx, userID, fundIDs, minScope)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockTransactionRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.TransactionSvcFacade
	userID         string
	accountID      string
	fundID         string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewTransactionService(suite.mockRepo, suite.mockAuthorizer)
	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.fundID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) validCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		AccountID:   suite.accountID,
		TxDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Transferencia recibida",
		Amount:      decimal.RequireFromString("1500.00"),
		Type:        "credit",
		FundID:      &suite.fundID,
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SingleFundSugar() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(allocs []domain.Allocation) bool {
		return len(allocs) == 1 && allocs[0].FundID == suite.fundID && allocs[0].Ratio.Equal(decimal.NewFromInt(1))
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.NoError(err)
	suite.NotNil(txn)
	suite.Len(txn.Allocations, 1)
	suite.Equal(txn.TransactionID, txn.Allocations[0].TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BothFundAndAllocations() {
	req := suite.validCreateRequest()
	req.Allocations = []dto.AllocationRequest{{FundID: uuid.NewString(), Ratio: decimal.NewFromInt(1)}}

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NeitherFundNorAllocations() {
	req := suite.validCreateRequest()
	req.FundID = nil

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RatioSumRejected() {
	req := suite.validCreateRequest()
	req.FundID = nil
	req.Allocations = []dto.AllocationRequest{
		{FundID: uuid.NewString(), Ratio: decimal.RequireFromString("0.5")},
		{FundID: uuid.NewString(), Ratio: decimal.RequireFromString("0.4")},
	}

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForbiddenFund() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidAmount() {
	req := suite.validCreateRequest()
	req.Amount = decimal.Zero

	_, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) existingTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     suite.accountID,
		TxDate:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString("200.00"),
		Type:          domain.Debit,
		Allocations: []domain.Allocation{
			{AllocationID: uuid.NewString(), FundID: suite.fundID, Ratio: decimal.NewFromInt(1)},
		},
	}
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ReplacesAllocationsWholesale() {
	ctx := context.Background()
	existing := suite.existingTransaction()
	newFundA := uuid.NewString()
	newFundB := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{newFundA, newFundB}, domain.ScopeWrite).Return(nil).Once()
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(allocs []domain.Allocation) bool {
		return len(allocs) == 2
	})).Return(nil).Once()

	req := dto.UpdateTransactionRequest{
		Allocations: []dto.AllocationRequest{
			{FundID: newFundA, Ratio: decimal.RequireFromString("0.6")},
			{FundID: newFundB, Ratio: decimal.RequireFromString("0.4")},
		},
	}
	txn, err := suite.service.UpdateTransaction(ctx, existing.TransactionID, req, suite.userID)

	suite.NoError(err)
	suite.Len(txn.Allocations, 2)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NilAllocationsKeepExisting() {
	ctx := context.Background()
	existing := suite.existingTransaction()

	suite.mockRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), []domain.Allocation(nil)).Return(nil).Once()

	desc := "Pago servicios"
	txn, err := suite.service.UpdateTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{Description: &desc}, suite.userID)

	suite.NoError(err)
	suite.Equal("Pago servicios", txn.Description)
	suite.Len(txn.Allocations, 1)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RequiresAdminRole() {
	ctx := context.Background()
	existing := suite.existingTransaction()
	suite.mockRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAuthorizer.On("RequireRole", ctx, suite.userID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeleteTransaction(ctx, existing.TransactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_AdminDeletes() {
	ctx := context.Background()
	existing := suite.existingTransaction()
	suite.mockRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAuthorizer.On("RequireRole", ctx, suite.userID, domain.RoleAdmin).Return(nil).Once()
	suite.mockRepo.On("DeleteTransaction", ctx, suite.userID, existing.TransactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, existing.TransactionID, suite.userID)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	txnID := uuid.NewString()
	suite.mockRepo.On("FindTransactionByID", ctx, suite.userID, txnID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, txnID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
}

func (suite *TransactionServiceTestSuite) TestListTransactions_UnknownTypeRejected() {
	badType := "transferencia"
	_, err := suite.service.ListTransactions(context.Background(), suite.userID, dto.ListTransactionsParams{Type: &badType})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
