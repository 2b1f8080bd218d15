package models

import "time"

// User is the database row shape for users.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty"`
}

// Role is the database row shape for roles.
type Role struct {
	RoleID string `json:"roleID"`
	Name   string `json:"name"`
	AuditFields
}

// UserRole is the database row shape for the user-role assignment table.
type UserRole struct {
	UserID     string    `json:"userID"`
	RoleID     string    `json:"roleID"`
	RoleName   string    `json:"roleName"`
	AssignedAt time.Time `json:"assignedAt"`
}
