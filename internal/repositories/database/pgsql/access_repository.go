package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	"github.com/fondosar/backoffice_api/internal/models"
	"github.com/fondosar/backoffice_api/internal/utils/mapping"
)

// PgxAccessRepository is the single query surface over roles, role-fund
// grants, and the effective_fund_access view. Every fund-scoped repository
// filters through the same view, so visibility is identical on every path.
type PgxAccessRepository struct {
	BaseRepository
}

func newPgxAccessRepository(pool *pgxpool.Pool) portsrepo.AccessRepositoryFacade {
	return &PgxAccessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccessRepository implements portsrepo.AccessRepositoryFacade
var _ portsrepo.AccessRepositoryFacade = (*PgxAccessRepository)(nil)

func (r *PgxAccessRepository) ListEffectiveAccess(ctx context.Context, userID string) ([]domain.FundAccess, error) {
	query := `
		SELECT efa.user_id, efa.fund_id, efa.fund_name, efa.scope
		FROM effective_fund_access efa
		WHERE efa.user_id = $1
		ORDER BY efa.fund_name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query effective access for user %s: %w", userID, err)
	}
	defer rows.Close()

	access := []domain.FundAccess{}
	for rows.Next() {
		var m models.EffectiveFundAccess
		if err := rows.Scan(&m.UserID, &m.FundID, &m.FundName, &m.Scope); err != nil {
			return nil, fmt.Errorf("failed to scan effective access row: %w", err)
		}
		access = append(access, mapping.ToDomainFundAccess(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating effective access rows: %w", err)
	}
	return access, nil
}

// CountFundsWithScope counts the distinct requested funds on which the user
// holds at least minScope. Callers compare against the request set size and
// fail closed on any mismatch.
func (r *PgxAccessRepository) CountFundsWithScope(ctx context.Context, userID string, fundIDs []string, minScope domain.AccessScope) (int, error) {
	if len(fundIDs) == 0 {
		return 0, nil
	}
	query := `
		SELECT COUNT(DISTINCT efa.fund_id)
		FROM effective_fund_access efa
		WHERE efa.user_id = $1
		  AND efa.fund_id = ANY($2)
		  AND ` + scopeRankExpr("efa.scope") + ` >= ` + scopeRankExpr("$3") + `;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, userID, fundIDs, string(minScope)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count funds with scope for user %s: %w", userID, err)
	}
	return count, nil
}

func (r *PgxAccessRepository) HasRole(ctx context.Context, userID string, roleName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM user_roles ur
			JOIN roles r ON r.role_id = ur.role_id
			WHERE ur.user_id = $1 AND r.name = $2
		);
	`
	var has bool
	if err := r.Pool.QueryRow(ctx, query, userID, roleName).Scan(&has); err != nil {
		return false, fmt.Errorf("failed to check role %s for user %s: %w", roleName, userID, err)
	}
	return has, nil
}

func (r *PgxAccessRepository) ListRolesByUserID(ctx context.Context, userID string) ([]domain.UserRole, error) {
	query := `
		SELECT ur.user_id, ur.role_id, r.name, ur.assigned_at
		FROM user_roles ur
		JOIN roles r ON r.role_id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles for user %s: %w", userID, err)
	}
	defer rows.Close()

	userRoles := []domain.UserRole{}
	for rows.Next() {
		var m models.UserRole
		if err := rows.Scan(&m.UserID, &m.RoleID, &m.RoleName, &m.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user role row: %w", err)
		}
		userRoles = append(userRoles, mapping.ToDomainUserRole(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user role rows: %w", err)
	}
	return userRoles, nil
}

func (r *PgxAccessRepository) SaveRole(ctx context.Context, role domain.Role) error {
	query := `
		INSERT INTO roles (role_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		role.RoleID,
		role.Name,
		role.CreatedAt,
		role.CreatedBy,
		role.LastUpdatedAt,
		role.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("role %s already exists: %w", role.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save role %s: %w", role.Name, err)
	}
	return nil
}

func (r *PgxAccessRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	return r.findRole(ctx, `WHERE role_id = $1`, roleID)
}

func (r *PgxAccessRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findRole(ctx, `WHERE lower(name) = lower($1)`, name)
}

func (r *PgxAccessRepository) findRole(ctx context.Context, filter string, arg any) (*domain.Role, error) {
	query := `
		SELECT role_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM roles ` + filter + `;`
	var m models.Role
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.RoleID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	role := mapping.ToDomainRole(m)
	return &role, nil
}

func (r *PgxAccessRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	query := `
		SELECT role_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM roles
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var m models.Role
		if err := rows.Scan(&m.RoleID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, mapping.ToDomainRole(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}
	return roles, nil
}

func (r *PgxAccessRepository) AssignRole(ctx context.Context, userID, roleID, actingUserID string) error {
	tx, err := r.Begin(ctx, actingUserID)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO user_roles (user_id, role_id, assigned_at)
		VALUES ($1, $2, NOW());
	`
	if _, err := tx.Exec(ctx, query, userID, roleID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user already holds role: %w", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("user or role does not exist: %w", apperrors.ErrNotFound)
			}
		}
		return fmt.Errorf("failed to assign role %s to user %s: %w", roleID, userID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAccessRepository) RevokeRole(ctx context.Context, userID, roleID string) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to revoke role %s from user %s: %w", roleID, userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("role assignment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// UpsertRoleFundAccess creates or replaces a role's scope on a fund. Grants
// are per (role, fund); re-granting narrows or widens the scope in place.
func (r *PgxAccessRepository) UpsertRoleFundAccess(ctx context.Context, grant domain.RoleFundAccess, actingUserID string) error {
	tx, err := r.Begin(ctx, actingUserID)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO role_fund_access (role_id, fund_id, scope)
		VALUES ($1, $2, $3)
		ON CONFLICT (role_id, fund_id) DO UPDATE SET scope = EXCLUDED.scope;
	`
	if _, err := tx.Exec(ctx, query, grant.RoleID, grant.FundID, string(grant.Scope)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("role or fund does not exist: %w", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to upsert fund access for role %s: %w", grant.RoleID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAccessRepository) DeleteRoleFundAccess(ctx context.Context, roleID, fundID string) error {
	query := `DELETE FROM role_fund_access WHERE role_id = $1 AND fund_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, roleID, fundID)
	if err != nil {
		return fmt.Errorf("failed to delete fund access for role %s: %w", roleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("fund access grant not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
