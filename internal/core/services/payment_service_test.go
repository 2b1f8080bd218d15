package services_test

import (
	"context"
	"testing"

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

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, userID, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, userID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, userID string, filter portsrepo.PaymentFilter, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Payment), token, args.Error(2)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockPaymentRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.PaymentSvcFacade
	userID         string
	fundID         string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPaymentRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewPaymentService(suite.mockRepo, suite.mockAuthorizer)
	suite.userID = uuid.NewString()
	suite.fundID = uuid.NewString()
}

func (suite *PaymentServiceTestSuite) pendingPayment(total string) *domain.Payment {
	return &domain.Payment{
		PaymentID:   uuid.NewString(),
		FundID:      suite.fundID,
		ProviderID:  uuid.NewString(),
		TotalAmount: decimal.RequireFromString(total),
		PaidAmount:  decimal.Zero,
		Status:      domain.PaymentPendiente,
	}
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_StartsPending() {
	ctx := context.Background()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()
	suite.mockRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentPendiente && p.PaidAmount.IsZero()
	})).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, dto.CreatePaymentRequest{
		FundID:      suite.fundID,
		ProviderID:  uuid.NewString(),
		TotalAmount: decimal.RequireFromString("5000.00"),
	}, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.PaymentPendiente, payment.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_PartialThenPaid() {
	ctx := context.Background()
	payment := suite.pendingPayment("1000.00")

	suite.mockRepo.On("FindPaymentByID", ctx, suite.userID, payment.PaymentID).Return(payment, nil)
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil)
	suite.mockRepo.On("UpdatePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil)

	updated, err := suite.service.RegisterPayment(ctx, payment.PaymentID, dto.RegisterPaymentRequest{Amount: decimal.RequireFromString("400.00")}, suite.userID)
	suite.NoError(err)
	suite.Equal(domain.PaymentParcial, updated.Status)
	suite.True(updated.RemainingAmount().Equal(decimal.RequireFromString("600.00")))

	updated, err = suite.service.RegisterPayment(ctx, payment.PaymentID, dto.RegisterPaymentRequest{Amount: decimal.RequireFromString("600.00")}, suite.userID)
	suite.NoError(err)
	suite.Equal(domain.PaymentPagada, updated.Status)
	suite.True(updated.RemainingAmount().IsZero())
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_OverpaymentRejected() {
	ctx := context.Background()
	payment := suite.pendingPayment("100.00")

	suite.mockRepo.On("FindPaymentByID", ctx, suite.userID, payment.PaymentID).Return(payment, nil).Once()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()

	_, err := suite.service.RegisterPayment(ctx, payment.PaymentID, dto.RegisterPaymentRequest{Amount: decimal.RequireFromString("100.01")}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePayment")
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_CancelledIsTerminal() {
	ctx := context.Background()
	payment := suite.pendingPayment("100.00")
	payment.Status = domain.PaymentCancelada

	suite.mockRepo.On("FindPaymentByID", ctx, suite.userID, payment.PaymentID).Return(payment, nil).Once()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{suite.fundID}, domain.ScopeWrite).Return(nil).Once()

	_, err := suite.service.RegisterPayment(ctx, payment.PaymentID, dto.RegisterPaymentRequest{Amount: decimal.NewFromInt(10)}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_NonPositiveAmount() {
	_, err := suite.service.RegisterPayment(context.Background(), uuid.NewString(), dto.RegisterPaymentRequest{Amount: decimal.Zero}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindPaymentByID")
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
