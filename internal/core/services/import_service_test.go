package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/core/services"
)

type ImportServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockTransactionRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.ImportSvcFacade
	userID         string
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewImportService(suite.mockRepo, suite.mockAuthorizer)
	suite.userID = uuid.NewString()
}

const validStatement = `account_id,date,description,amount,type,category_id,fund_id
acc-1,2024-03-01,Transferencia recibida,"40.000,00",credit,,fund-1
acc-1,2024-03-02,Pago proveedor,"1.500,25",debit,cat-9,fund-1
acc-2,2024-03-03,Comision,120,debit,,fund-2
`

func (suite *ImportServiceTestSuite) TestImportStatement_Success() {
	ctx := context.Background()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{"fund-1", "fund-2"}, domain.ScopeWrite).Return(nil).Once()
	suite.mockRepo.On("SaveTransactionsBatch", ctx, suite.userID,
		mock.MatchedBy(func(txns []domain.Transaction) bool {
			return len(txns) == 3 && txns[0].Amount.Equal(decimal.RequireFromString("40000.00"))
		}),
		mock.MatchedBy(func(allocs []domain.Allocation) bool {
			return len(allocs) == 3 && allocs[0].Ratio.Equal(decimal.NewFromInt(1))
		}),
	).Return(nil).Once()

	result, err := suite.service.ImportStatement(ctx, strings.NewReader(validStatement), false, suite.userID)

	suite.NoError(err)
	suite.Equal(3, result.RowsRead)
	suite.Equal(3, result.RowsImported)
	suite.Empty(result.RowErrors)
	suite.False(result.DryRun)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportStatement_DryRunNeverWrites() {
	ctx := context.Background()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{"fund-1", "fund-2"}, domain.ScopeWrite).Return(nil).Once()

	result, err := suite.service.ImportStatement(ctx, strings.NewReader(validStatement), true, suite.userID)

	suite.NoError(err)
	suite.True(result.DryRun)
	suite.Equal(3, result.RowsRead)
	suite.Equal(0, result.RowsImported)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactionsBatch")
}

func (suite *ImportServiceTestSuite) TestImportStatement_RowErrorsBlockWholeBatch() {
	ctx := context.Background()
	statement := `account_id,date,description,amount,type,category_id,fund_id
acc-1,2024-03-01,Valida,100,credit,,fund-1
acc-1,not-a-date,Mala fecha,100,credit,,fund-1
acc-1,2024-03-03,Mal monto,abc,credit,,fund-1
`

	result, err := suite.service.ImportStatement(ctx, strings.NewReader(statement), false, suite.userID)

	suite.NoError(err)
	suite.Equal(3, result.RowsRead)
	suite.Equal(0, result.RowsImported)
	suite.Len(result.RowErrors, 2)
	// Line numbers are 1-based file lines: header is line 1.
	suite.Equal(3, result.RowErrors[0].Line)
	suite.Equal(4, result.RowErrors[1].Line)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactionsBatch")
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "RequireFundScope")
}

func (suite *ImportServiceTestSuite) TestImportStatement_MissingColumnIsFileError() {
	ctx := context.Background()
	statement := `account_id,date,description,amount,type
acc-1,2024-03-01,Sin fondo,100,credit
`

	result, err := suite.service.ImportStatement(ctx, strings.NewReader(statement), false, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *ImportServiceTestSuite) TestImportStatement_ForbiddenFundBlocksImport() {
	ctx := context.Background()
	suite.mockAuthorizer.On("RequireFundScope", ctx, suite.userID, []string{"fund-1", "fund-2"}, domain.ScopeWrite).Return(apperrors.ErrForbidden).Once()

	result, err := suite.service.ImportStatement(ctx, strings.NewReader(validStatement), false, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactionsBatch")
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
