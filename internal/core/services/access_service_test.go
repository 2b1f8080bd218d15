package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/core/services"
)

// --- Mock AccessRepository ---
type MockAccessRepository struct {
	mock.Mock
}

var _ portsrepo.AccessRepositoryFacade = (*MockAccessRepository)(nil)

func (m *MockAccessRepository) ListEffectiveAccess(ctx context.Context, userID string) ([]domain.FundAccess, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundAccess), args.Error(1)
}

func (m *MockAccessRepository) CountFundsWithScope(ctx context.Context, userID string, fundIDs []string, minScope domain.AccessScope) (int, error) {
	args := m.Called(ctx, userID, fundIDs, minScope)
	return args.Int(0), args.Error(1)
}

func (m *MockAccessRepository) HasRole(ctx context.Context, userID string, roleName string) (bool, error) {
	args := m.Called(ctx, userID, roleName)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessRepository) ListRolesByUserID(ctx context.Context, userID string) ([]domain.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRole), args.Error(1)
}

func (m *MockAccessRepository) AssignRole(ctx context.Context, userID, roleID, actingUserID string) error {
	args := m.Called(ctx, userID, roleID, actingUserID)
	return args.Error(0)
}

func (m *MockAccessRepository) RevokeRole(ctx context.Context, userID, roleID string) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockAccessRepository) UpsertRoleFundAccess(ctx context.Context, grant domain.RoleFundAccess, actingUserID string) error {
	args := m.Called(ctx, grant, actingUserID)
	return args.Error(0)
}

func (m *MockAccessRepository) DeleteRoleFundAccess(ctx context.Context, roleID, fundID string) error {
	args := m.Called(ctx, roleID, fundID)
	return args.Error(0)
}

func (m *MockAccessRepository) SaveRole(ctx context.Context, role domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockAccessRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockAccessRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockAccessRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

// --- Test Suite ---
type AccessServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccessRepository
	service  portssvc.AccessSvcFacade
	userID   string
}

func (suite *AccessServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccessRepository)
	suite.service = services.NewAccessService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccessServiceTestSuite) TestResolveEffectiveAccess_Success() {
	ctx := context.Background()
	expected := []domain.FundAccess{
		{FundID: "f1", FundName: "Fondo A", Scope: domain.ScopeAdmin},
		{FundID: "f2", FundName: "Fondo B", Scope: domain.ScopeRead},
	}
	suite.mockRepo.On("ListEffectiveAccess", ctx, suite.userID).Return(expected, nil).Once()

	access, err := suite.service.ResolveEffectiveAccess(ctx, suite.userID)

	suite.NoError(err)
	suite.Equal(expected, access)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestResolveEffectiveAccess_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListEffectiveAccess", ctx, suite.userID).Return([]domain.FundAccess(nil), nil).Once()

	access, err := suite.service.ResolveEffectiveAccess(ctx, suite.userID)

	suite.NoError(err)
	suite.NotNil(access)
	suite.Empty(access)
}

func (suite *AccessServiceTestSuite) TestRequireFundScope_AllGranted() {
	ctx := context.Background()
	funds := []string{"f1", "f2"}
	suite.mockRepo.On("CountFundsWithScope", ctx, suite.userID, funds, domain.ScopeWrite).Return(2, nil).Once()

	err := suite.service.RequireFundScope(ctx, suite.userID, funds, domain.ScopeWrite)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestRequireFundScope_FailsClosedOnMissingGrant() {
	ctx := context.Background()
	funds := []string{"f1", "f2", "f3"}
	suite.mockRepo.On("CountFundsWithScope", ctx, suite.userID, funds, domain.ScopeWrite).Return(2, nil).Once()

	err := suite.service.RequireFundScope(ctx, suite.userID, funds, domain.ScopeWrite)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccessServiceTestSuite) TestRequireFundScope_FailsClosedOnUnknownFund() {
	ctx := context.Background()
	// An unknown fund ID yields no access row, so the count falls short.
	funds := []string{uuid.NewString()}
	suite.mockRepo.On("CountFundsWithScope", ctx, suite.userID, funds, domain.ScopeRead).Return(0, nil).Once()

	err := suite.service.RequireFundScope(ctx, suite.userID, funds, domain.ScopeRead)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccessServiceTestSuite) TestRequireFundScope_DeduplicatesBeforeCounting() {
	ctx := context.Background()
	// The same fund twice must count once, not twice.
	suite.mockRepo.On("CountFundsWithScope", ctx, suite.userID, []string{"f1"}, domain.ScopeWrite).Return(1, nil).Once()

	err := suite.service.RequireFundScope(ctx, suite.userID, []string{"f1", "f1"}, domain.ScopeWrite)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestRequireFundScope_EmptySetIsValidationError() {
	err := suite.service.RequireFundScope(context.Background(), suite.userID, nil, domain.ScopeWrite)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountFundsWithScope")
}

func (suite *AccessServiceTestSuite) TestRequireRole() {
	ctx := context.Background()
	suite.mockRepo.On("HasRole", ctx, suite.userID, "admin").Return(true, nil).Once()
	suite.NoError(suite.service.RequireRole(ctx, suite.userID, "admin"))

	suite.mockRepo.On("HasRole", ctx, suite.userID, "owner").Return(false, nil).Once()
	suite.mockRepo.On("HasRole", ctx, suite.userID, "admin").Return(false, nil).Once()
	suite.ErrorIs(suite.service.RequireRole(ctx, suite.userID, "owner"), apperrors.ErrForbidden)
}

func (suite *AccessServiceTestSuite) TestRequireRole_OverrideSatisfiesAnyGate() {
	ctx := context.Background()
	suite.mockRepo.On("HasRole", ctx, suite.userID, "operador").Return(false, nil).Once()
	suite.mockRepo.On("HasRole", ctx, suite.userID, domain.RoleAdmin).Return(false, nil).Once()
	suite.mockRepo.On("HasRole", ctx, suite.userID, domain.RoleOwner).Return(true, nil).Once()

	suite.NoError(suite.service.RequireRole(ctx, suite.userID, "operador"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestCreateRole_RequiresOverrideRole() {
	ctx := context.Background()
	suite.mockRepo.On("HasRole", ctx, suite.userID, domain.RoleAdmin).Return(false, nil).Once()
	suite.mockRepo.On("HasRole", ctx, suite.userID, domain.RoleOwner).Return(false, nil).Once()

	role, err := suite.service.CreateRole(ctx, "operador", suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(role)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRole")
}

func (suite *AccessServiceTestSuite) TestCreateRole_DuplicateName() {
	ctx := context.Background()
	suite.mockRepo.On("HasRole", ctx, suite.userID, domain.RoleAdmin).Return(true, nil).Once()
	existing := &domain.Role{RoleID: uuid.NewString(), Name: "operador"}
	suite.mockRepo.On("FindRoleByName", ctx, "operador").Return(existing, nil).Once()

	role, err := suite.service.CreateRole(ctx, "operador", suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(role)
}

func (suite *AccessServiceTestSuite) TestCreateRole_Success() {
	ctx := context.Background()
	suite.mockRepo.On("HasRole", ctx, suite.userID, domain.RoleAdmin).Return(true, nil).Once()
	suite.mockRepo.On("FindRoleByName", ctx, "operador").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveRole", ctx, mock.MatchedBy(func(r domain.Role) bool {
		return r.Name == "operador" && r.RoleID != "" && r.CreatedBy == suite.userID
	})).Return(nil).Once()

	role, err := suite.service.CreateRole(ctx, "operador", suite.userID)

	suite.NoError(err)
	suite.NotNil(role)
	suite.Equal("operador", role.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestGrantFundAccess_RejectsUnknownScope() {
	ctx := context.Background()
	suite.mockRepo.On("HasRole", ctx, suite.userID, domain.RoleAdmin).Return(true, nil).Once()

	err := suite.service.GrantFundAccess(ctx, "role-1", domain.RoleFundAccess{FundID: "f1", Scope: "superuser"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRoleFundAccess")
}

func TestAccessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccessServiceTestSuite))
}
