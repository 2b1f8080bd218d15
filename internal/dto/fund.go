package dto

import (
	"time"

	"github.com/fondosar/backoffice_api/internal/core/domain"
)

// --- Fund DTOs ---

// CreateFundRequest defines data for creating a new fund.
type CreateFundRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateFundRequest defines data allowed for updating a fund.
type UpdateFundRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// FundResponse defines data returned for a fund.
type FundResponse struct {
	FundID      string    `json:"fundID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ToFundResponse converts domain.Fund to DTO.
func ToFundResponse(f *domain.Fund) FundResponse {
	return FundResponse{
		FundID:      f.FundID,
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		CreatedBy:   f.CreatedBy,
	}
}

// ListFundsResponse wraps a list of funds.
type ListFundsResponse struct {
	Funds []FundResponse `json:"funds"`
}

// ToListFundsResponse converts a slice of domain.Fund to DTO.
func ToListFundsResponse(fs []domain.Fund) ListFundsResponse {
	list := make([]FundResponse, len(fs))
	for i, f := range fs {
		list[i] = ToFundResponse(&f)
	}
	return ListFundsResponse{Funds: list}
}

// --- Access DTOs ---

// FundAccessResponse is one row of a user's resolved fund access.
type FundAccessResponse struct {
	FundID   string             `json:"fundID"`
	FundName string             `json:"fundName"`
	Scope    domain.AccessScope `json:"scope"`
}

// EffectiveAccessResponse wraps the caller's resolved access set.
type EffectiveAccessResponse struct {
	Funds []FundAccessResponse `json:"funds"`
}

// ToEffectiveAccessResponse converts resolved domain.FundAccess rows to DTO.
func ToEffectiveAccessResponse(access []domain.FundAccess) EffectiveAccessResponse {
	list := make([]FundAccessResponse, len(access))
	for i, a := range access {
		list[i] = FundAccessResponse{
			FundID:   a.FundID,
			FundName: a.FundName,
			Scope:    a.Scope,
		}
	}
	return EffectiveAccessResponse{Funds: list}
}

// --- Role DTOs ---

// CreateRoleRequest defines data for creating a role.
type CreateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoleResponse defines data returned for a role.
type RoleResponse struct {
	RoleID string `json:"roleID"`
	Name   string `json:"name"`
}

// ToRoleResponse converts domain.Role to DTO.
func ToRoleResponse(r *domain.Role) RoleResponse {
	return RoleResponse{RoleID: r.RoleID, Name: r.Name}
}

// ListRolesResponse wraps a list of roles.
type ListRolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// ToListRolesResponse converts a slice of domain.Role to DTO.
func ToListRolesResponse(rs []domain.Role) ListRolesResponse {
	list := make([]RoleResponse, len(rs))
	for i, r := range rs {
		list[i] = ToRoleResponse(&r)
	}
	return ListRolesResponse{Roles: list}
}

// AssignRoleRequest assigns an existing role to a user.
type AssignRoleRequest struct {
	UserID string `json:"userID" binding:"required"`
	RoleID string `json:"roleID" binding:"required"`
}

// GrantFundAccessRequest grants a role a scope on a fund.
type GrantFundAccessRequest struct {
	FundID string             `json:"fundID" binding:"required"`
	Scope  domain.AccessScope `json:"scope" binding:"required,oneof=read write admin"`
}
