package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
)

// accessService handles effective-access resolution and the authorization
// gates every fund-scoped write runs through.
type accessService struct {
	BaseService
	accessRepo portsrepo.AccessRepositoryFacade
}

// NewAccessService creates a new access service.
func NewAccessService(accessRepo portsrepo.AccessRepositoryFacade) portssvc.AccessSvcFacade {
	return &accessService{accessRepo: accessRepo}
}

var _ portssvc.AccessSvcFacade = (*accessService)(nil)

// ResolveEffectiveAccess returns the user's resolved (fund, scope) set.
// The heavy lifting lives in the effective_fund_access view; this is a
// straight read of that view.
func (s *accessService) ResolveEffectiveAccess(ctx context.Context, userID string) ([]domain.FundAccess, error) {
	access, err := s.accessRepo.ListEffectiveAccess(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve effective access", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to resolve effective access: %w", err)
	}
	if access == nil {
		access = []domain.FundAccess{}
	}
	return access, nil
}

// RequireRole returns ErrForbidden unless the user holds the named role.
// Admin and owner holders satisfy every role gate.
func (s *accessService) RequireRole(ctx context.Context, userID, roleName string) error {
	candidates := dedupe([]string{roleName, domain.RoleAdmin, domain.RoleOwner})
	for _, name := range candidates {
		has, err := s.accessRepo.HasRole(ctx, userID, name)
		if err != nil {
			s.LogError(ctx, err, "Failed to check role", slog.String("user_id", userID), slog.String("role", name))
			return fmt.Errorf("failed to check role: %w", err)
		}
		if has {
			return nil
		}
	}
	s.LogDebug(ctx, "Role requirement not met", slog.String("user_id", userID), slog.String("role", roleName))
	return apperrors.ErrForbidden
}

// RequireFundScope checks that the user holds at least minScope on every one
// of the given funds. The check counts sufficiently-scoped funds and compares
// against the distinct request set size, so unknown fund IDs and missing
// grants both fail it.
func (s *accessService) RequireFundScope(ctx context.Context, userID string, fundIDs []string, minScope domain.AccessScope) error {
	distinct := dedupe(fundIDs)
	if len(distinct) == 0 {
		return fmt.Errorf("%w: no funds referenced", apperrors.ErrValidation)
	}
	count, err := s.accessRepo.CountFundsWithScope(ctx, userID, distinct, minScope)
	if err != nil {
		s.LogError(ctx, err, "Failed to check fund scope", slog.String("user_id", userID))
		return fmt.Errorf("failed to check fund scope: %w", err)
	}
	if count != len(distinct) {
		s.LogDebug(ctx, "Fund scope requirement not met",
			slog.String("user_id", userID),
			slog.String("min_scope", string(minScope)),
			slog.Int("required", len(distinct)),
			slog.Int("granted", count))
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateRole creates a named role. Restricted to admin/owner holders.
func (s *accessService) CreateRole(ctx context.Context, name string, actingUserID string) (*domain.Role, error) {
	if err := s.requireOverrideRole(ctx, actingUserID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", apperrors.ErrValidation)
	}

	existing, err := s.accessRepo.FindRoleByName(ctx, name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check role name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: role %s already exists", apperrors.ErrDuplicate, name)
	}

	now := time.Now()
	role := domain.Role{
		RoleID: uuid.NewString(),
		Name:   name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}
	if err := s.accessRepo.SaveRole(ctx, role); err != nil {
		s.LogError(ctx, err, "Failed to save role", slog.String("role_name", name))
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	s.LogInfo(ctx, "Role created", slog.String("role_id", role.RoleID), slog.String("role_name", name))
	return &role, nil
}

// ListRoles returns the role catalog. Restricted to admin/owner holders.
func (s *accessService) ListRoles(ctx context.Context, actingUserID string) ([]domain.Role, error) {
	if err := s.requireOverrideRole(ctx, actingUserID); err != nil {
		return nil, err
	}
	roles, err := s.accessRepo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	if roles == nil {
		roles = []domain.Role{}
	}
	return roles, nil
}

// AssignRole grants a role to a user.
func (s *accessService) AssignRole(ctx context.Context, targetUserID, roleID, actingUserID string) error {
	if err := s.requireOverrideRole(ctx, actingUserID); err != nil {
		return err
	}
	if _, err := s.accessRepo.FindRoleByID(ctx, roleID); err != nil {
		return fmt.Errorf("failed to find role %s: %w", roleID, err)
	}
	if err := s.accessRepo.AssignRole(ctx, targetUserID, roleID, actingUserID); err != nil {
		s.LogError(ctx, err, "Failed to assign role", slog.String("target_user_id", targetUserID), slog.String("role_id", roleID))
		return fmt.Errorf("failed to assign role: %w", err)
	}
	s.LogInfo(ctx, "Role assigned", slog.String("target_user_id", targetUserID), slog.String("role_id", roleID))
	return nil
}

// RevokeRole removes a role from a user.
func (s *accessService) RevokeRole(ctx context.Context, targetUserID, roleID, actingUserID string) error {
	if err := s.requireOverrideRole(ctx, actingUserID); err != nil {
		return err
	}
	if err := s.accessRepo.RevokeRole(ctx, targetUserID, roleID); err != nil {
		s.LogError(ctx, err, "Failed to revoke role", slog.String("target_user_id", targetUserID), slog.String("role_id", roleID))
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	s.LogInfo(ctx, "Role revoked", slog.String("target_user_id", targetUserID), slog.String("role_id", roleID))
	return nil
}

// GrantFundAccess creates or raises a role's scope on a fund.
func (s *accessService) GrantFundAccess(ctx context.Context, roleID string, grant domain.RoleFundAccess, actingUserID string) error {
	if err := s.requireOverrideRole(ctx, actingUserID); err != nil {
		return err
	}
	if !grant.Scope.IsValid() {
		return fmt.Errorf("%w: unknown access scope %q", apperrors.ErrValidation, grant.Scope)
	}
	grant.RoleID = roleID
	if err := s.accessRepo.UpsertRoleFundAccess(ctx, grant, actingUserID); err != nil {
		s.LogError(ctx, err, "Failed to grant fund access", slog.String("role_id", roleID), slog.String("fund_id", grant.FundID))
		return fmt.Errorf("failed to grant fund access: %w", err)
	}
	s.LogInfo(ctx, "Fund access granted", slog.String("role_id", roleID), slog.String("fund_id", grant.FundID), slog.String("scope", string(grant.Scope)))
	return nil
}

// RevokeFundAccess removes a role's grant on a fund.
func (s *accessService) RevokeFundAccess(ctx context.Context, roleID, fundID, actingUserID string) error {
	if err := s.requireOverrideRole(ctx, actingUserID); err != nil {
		return err
	}
	if err := s.accessRepo.DeleteRoleFundAccess(ctx, roleID, fundID); err != nil {
		s.LogError(ctx, err, "Failed to revoke fund access", slog.String("role_id", roleID), slog.String("fund_id", fundID))
		return fmt.Errorf("failed to revoke fund access: %w", err)
	}
	s.LogInfo(ctx, "Fund access revoked", slog.String("role_id", roleID), slog.String("fund_id", fundID))
	return nil
}

// requireOverrideRole gates admin operations on holding admin or owner.
func (s *accessService) requireOverrideRole(ctx context.Context, userID string) error {
	for _, role := range []string{domain.RoleAdmin, domain.RoleOwner} {
		has, err := s.accessRepo.HasRole(ctx, userID, role)
		if err != nil {
			return fmt.Errorf("failed to check role: %w", err)
		}
		if has {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// dedupe returns the distinct values preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
