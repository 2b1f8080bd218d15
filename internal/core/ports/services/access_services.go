package services

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// AccessResolverSvc defines effective-access resolution operations.
type AccessResolverSvc interface {
	// ResolveEffectiveAccess returns every (fund, scope) pair the user
	// reaches through their roles, highest grant winning per fund, with
	// admin/owner holders granted admin on all active funds.
	ResolveEffectiveAccess(ctx context.Context, userID string) ([]domain.FundAccess, error)
}

// AccessAuthorizerSvc defines the authorization gates applied before
// privileged or fund-scoped operations.
type AccessAuthorizerSvc interface {
	// RequireRole returns ErrForbidden unless the user holds the named role.
	RequireRole(ctx context.Context, userID, roleName string) error

	// RequireFundScope returns ErrForbidden unless the user holds at least
	// minScope on every one of the given funds. Unknown fund IDs fail the
	// check; the gate is closed by default.
	RequireFundScope(ctx context.Context, userID string, fundIDs []string, minScope domain.AccessScope) error
}

// AccessAdminSvc defines role and grant administration, restricted to
// admin/owner holders.
type AccessAdminSvc interface {
	// CreateRole creates a named role.
	CreateRole(ctx context.Context, name string, actingUserID string) (*domain.Role, error)

	// ListRoles returns the role catalog.
	ListRoles(ctx context.Context, actingUserID string) ([]domain.Role, error)

	// AssignRole grants a role to a user.
	AssignRole(ctx context.Context, targetUserID, roleID, actingUserID string) error

	// RevokeRole removes a role from a user.
	RevokeRole(ctx context.Context, targetUserID, roleID, actingUserID string) error

	// GrantFundAccess creates or raises a role's scope on a fund.
	GrantFundAccess(ctx context.Context, roleID string, grant domain.RoleFundAccess, actingUserID string) error

	// RevokeFundAccess removes a role's grant on a fund.
	RevokeFundAccess(ctx context.Context, roleID, fundID, actingUserID string) error
}

// AccessSvcFacade combines all access-control service interfaces
type AccessSvcFacade interface {
	AccessResolverSvc
	AccessAuthorizerSvc
	AccessAdminSvc
}
