package domain

// Fund represents a named financial bucket that transactions, invoices and
// payments are attributed to.
type Fund struct {
	FundID      string `json:"fundID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// AccessScope is the level of access a role grants over a fund.
type AccessScope string

const (
	ScopeRead  AccessScope = "read"
	ScopeWrite AccessScope = "write"
	ScopeAdmin AccessScope = "admin"
)

// rank orders scopes so "highest grant wins" comparisons are explicit.
func (s AccessScope) rank() int {
	switch s {
	case ScopeRead:
		return 1
	case ScopeWrite:
		return 2
	case ScopeAdmin:
		return 3
	}
	return 0
}

// IsValid reports whether s is one of the three known scopes.
func (s AccessScope) IsValid() bool {
	return s.rank() > 0
}

// AtLeast reports whether s grants at least the access of min.
func (s AccessScope) AtLeast(min AccessScope) bool {
	return s.rank() >= min.rank()
}

// Max returns the higher of the two scopes.
func (s AccessScope) Max(other AccessScope) AccessScope {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// RoleFundAccess grants a role a scope over a fund.
type RoleFundAccess struct {
	RoleID string      `json:"roleID"`
	FundID string      `json:"fundID"`
	Scope  AccessScope `json:"scope"`
}

// FundAccess is one row of a user's resolved effective access: the highest
// scope the user reaches on a fund through any held role, with admin/owner
// holders granted admin scope on every active fund.
type FundAccess struct {
	FundID   string      `json:"fundID"`
	FundName string      `json:"fundName"`
	Scope    AccessScope `json:"scope"`
}
