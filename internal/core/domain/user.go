package domain

import "time"

// User represents a back-office user in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo is the profile returned by Google's userinfo endpoint
// during an OAuth login.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Role is a named grant bundle. Users hold roles many-to-many; roles hold
// fund access grants.
type Role struct {
	RoleID string `json:"roleID"` // Primary Key (UUID)
	Name   string `json:"name"`   // e.g. "admin", "owner", "operador"
	AuditFields
}

const (
	// RoleAdmin and RoleOwner bypass fund filtering entirely: holders are
	// treated as having admin scope on every fund.
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// IsOverrideRole reports whether a role name grants the universal bypass.
func IsOverrideRole(name string) bool {
	return name == RoleAdmin || name == RoleOwner
}

// UserRole represents the assignment of a Role to a User.
type UserRole struct {
	UserID     string    `json:"userID"`
	RoleID     string    `json:"roleID"`
	RoleName   string    `json:"roleName"`
	AssignedAt time.Time `json:"assignedAt"`
}
