package mapping

import (
	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Email:                  d.Email,
		Name:                   d.Name,
		PasswordHash:           d.PasswordHash,
		IsActive:               d.IsActive,
		AuditFields:            ToModelAuditFields(d.AuditFields),
		RefreshTokenHash:       d.RefreshTokenHash,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		DeletedAt:              d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Email:                  m.Email,
		Name:                   m.Name,
		PasswordHash:           m.PasswordHash,
		IsActive:               m.IsActive,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		RefreshTokenHash:       m.RefreshTokenHash,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		DeletedAt:              m.DeletedAt,
	}
}

// ToDomainRole converts a model Role to a domain Role
func ToDomainRole(m models.Role) domain.Role {
	return domain.Role{
		RoleID:      m.RoleID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserRole converts a model UserRole to a domain UserRole
func ToDomainUserRole(m models.UserRole) domain.UserRole {
	return domain.UserRole{
		UserID:     m.UserID,
		RoleID:     m.RoleID,
		RoleName:   m.RoleName,
		AssignedAt: m.AssignedAt,
	}
}
