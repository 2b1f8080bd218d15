package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/dto"
	"github.com/fondosar/backoffice_api/internal/handlers"
	"github.com/fondosar/backoffice_api/internal/middleware"
	"github.com/fondosar/backoffice_api/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FundService ---
type MockFundService struct {
	mock.Mock
}

func (m *MockFundService) GetFundByID(ctx context.Context, fundID string, requestingUserID string) (*domain.Fund, error) {
	args := m.Called(ctx, fundID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fund), args.Error(1)
}
func (m *MockFundService) ListFunds(ctx context.Context, requestingUserID string, includeInactive bool) ([]domain.Fund, error) {
	args := m.Called(ctx, requestingUserID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fund), args.Error(1)
}
func (m *MockFundService) CreateFund(ctx context.Context, req dto.CreateFundRequest, creatorUserID string) (*domain.Fund, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fund), args.Error(1)
}
func (m *MockFundService) UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest, requestingUserID string) (*domain.Fund, error) {
	args := m.Called(ctx, fundID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fund), args.Error(1)
}

var _ portssvc.FundSvcFacade = (*MockFundService)(nil)

// --- Mock AccessService ---
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) ResolveEffectiveAccess(ctx context.Context, userID string) ([]domain.FundAccess, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundAccess), args.Error(1)
}
func (m *MockAccessService) RequireRole(ctx context.Context, userID, roleName string) error {
	args := m.Called(ctx, userID, roleName)
	return args.Error(0)
}
func (m *MockAccessService) RequireFundScope(ctx context.Context, userID string, fundIDs []string, minScope domain.AccessScope) error {
	args := m.Called(ctx, userID, fundIDs, minScope)
	return args.Error(0)
}
func (m *MockAccessService) CreateRole(ctx context.Context, name string, actingUserID string) (*domain.Role, error) {
	args := m.Called(ctx, name, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}
func (m *MockAccessService) ListRoles(ctx context.Context, actingUserID string) ([]domain.Role, error) {
	args := m.Called(ctx, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}
func (m *MockAccessService) AssignRole(ctx context.Context, targetUserID, roleID, actingUserID string) error {
	args := m.Called(ctx, targetUserID, roleID, actingUserID)
	return args.Error(0)
}
func (m *MockAccessService) RevokeRole(ctx context.Context, targetUserID, roleID, actingUserID string) error {
	args := m.Called(ctx, targetUserID, roleID, actingUserID)
	return args.Error(0)
}
func (m *MockAccessService) GrantFundAccess(ctx context.Context, roleID string, grant domain.RoleFundAccess, actingUserID string) error {
	args := m.Called(ctx, roleID, grant, actingUserID)
	return args.Error(0)
}
func (m *MockAccessService) RevokeFundAccess(ctx context.Context, roleID, fundID, actingUserID string) error {
	args := m.Called(ctx, roleID, fundID, actingUserID)
	return args.Error(0)
}

var _ portssvc.AccessSvcFacade = (*MockAccessService)(nil)

// --- Test Suite ---
type FundHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockFundService   *MockFundService
	mockAccessService *MockAccessService
	cfg               *config.Config
}

// generateTestToken creates a dummy JWT for testing.
func (suite *FundHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.cfg.JWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *FundHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.cfg = &config.Config{
		JWTSecret: "test-secret-key-that-is-long-enough",
	}

	suite.router.Use(middleware.AuthMiddleware(suite.cfg))

	suite.mockFundService = new(MockFundService)
	suite.mockAccessService = new(MockAccessService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterFundRoutes(v1, suite.mockFundService, suite.mockAccessService)
}

func (suite *FundHandlerTestSuite) performRequest(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FundHandlerTestSuite) TestGetFund_Success() {
	fundID := uuid.NewString()
	userID := uuid.NewString()

	expected := &domain.Fund{
		FundID:   fundID,
		Name:     "Fondo Operativo",
		IsActive: true,
	}
	suite.mockFundService.On("GetFundByID", mock.Anything, fundID, userID).Return(expected, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/funds/"+fundID, suite.generateTestToken(userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FundResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(fundID, resp.FundID)
	suite.Equal("Fondo Operativo", resp.Name)
	suite.mockFundService.AssertExpectations(suite.T())
}

func (suite *FundHandlerTestSuite) TestGetFund_NotVisibleIsNotFound() {
	fundID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockFundService.On("GetFundByID", mock.Anything, fundID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/funds/"+fundID, suite.generateTestToken(userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockFundService.AssertExpectations(suite.T())
}

func (suite *FundHandlerTestSuite) TestGetFund_MissingTokenIsUnauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/funds/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockFundService.AssertNotCalled(suite.T(), "GetFundByID")
}

func (suite *FundHandlerTestSuite) TestListFunds_Success() {
	userID := uuid.NewString()

	funds := []domain.Fund{
		{FundID: uuid.NewString(), Name: "Fondo A", IsActive: true},
		{FundID: uuid.NewString(), Name: "Fondo B", IsActive: true},
	}
	suite.mockFundService.On("ListFunds", mock.Anything, userID, false).Return(funds, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/funds", suite.generateTestToken(userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListFundsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Funds, 2)
	suite.mockFundService.AssertExpectations(suite.T())
}

func (suite *FundHandlerTestSuite) TestListFunds_IncludeInactiveFlag() {
	userID := uuid.NewString()

	suite.mockFundService.On("ListFunds", mock.Anything, userID, true).
		Return([]domain.Fund{}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/funds?includeInactive=true", suite.generateTestToken(userID))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockFundService.AssertExpectations(suite.T())
}

func (suite *FundHandlerTestSuite) TestGetMyAccess_Success() {
	userID := uuid.NewString()

	access := []domain.FundAccess{
		{FundID: uuid.NewString(), FundName: "Fondo A", Scope: domain.ScopeAdmin},
		{FundID: uuid.NewString(), FundName: "Fondo B", Scope: domain.ScopeRead},
	}
	suite.mockAccessService.On("ResolveEffectiveAccess", mock.Anything, userID).Return(access, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/me/access", suite.generateTestToken(userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EffectiveAccessResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Funds, 2)
	suite.Equal("admin", string(resp.Funds[0].Scope))
	suite.mockAccessService.AssertExpectations(suite.T())
}

func (suite *FundHandlerTestSuite) TestCreateFund_ForbiddenWithoutAdminRole() {
	userID := uuid.NewString()

	suite.mockFundService.On("CreateFund", mock.Anything, mock.AnythingOfType("dto.CreateFundRequest"), userID).
		Return(nil, fmt.Errorf("admin role required: %w", apperrors.ErrForbidden)).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/funds", strings.NewReader(`{"name":"Fondo Nuevo"}`))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockFundService.AssertExpectations(suite.T())
}

func TestFundHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FundHandlerTestSuite))
}
