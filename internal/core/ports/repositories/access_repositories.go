package repositories

import (
	"context"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// AccessReader resolves effective fund access. It is the single query surface
// over the effective_fund_access view; every entity repository filters
// through the same view so visibility is identical on list, detail and write
// paths.
type AccessReader interface {
	// ListEffectiveAccess returns every (fund, scope) pair the user reaches
	// through their roles, with the admin/owner override already applied.
	ListEffectiveAccess(ctx context.Context, userID string) ([]domain.FundAccess, error)

	// CountFundsWithScope returns how many of the given distinct funds the
	// user holds at least minScope on. Callers compare against the request
	// set size and fail closed on mismatch.
	CountFundsWithScope(ctx context.Context, userID string, fundIDs []string, minScope domain.AccessScope) (int, error)

	// HasRole reports whether the user holds the named role.
	HasRole(ctx context.Context, userID string, roleName string) (bool, error)

	// ListRolesByUserID returns the user's role assignments.
	ListRolesByUserID(ctx context.Context, userID string) ([]domain.UserRole, error)
}

// AccessWriter manages role assignments and role-fund grants.
type AccessWriter interface {
	// AssignRole grants a role to a user. Duplicate assignment is ErrDuplicate.
	AssignRole(ctx context.Context, userID, roleID, actingUserID string) error

	// RevokeRole removes a role from a user.
	RevokeRole(ctx context.Context, userID, roleID string) error

	// UpsertRoleFundAccess creates or updates a role's scope on a fund.
	UpsertRoleFundAccess(ctx context.Context, grant domain.RoleFundAccess, actingUserID string) error

	// DeleteRoleFundAccess removes a role's grant on a fund.
	DeleteRoleFundAccess(ctx context.Context, roleID, fundID string) error
}

// RoleManager manages the role catalog itself.
type RoleManager interface {
	SaveRole(ctx context.Context, role domain.Role) error
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

// AccessRepositoryFacade combines all access-control repository interfaces.
type AccessRepositoryFacade interface {
	AccessReader
	AccessWriter
	RoleManager
}
