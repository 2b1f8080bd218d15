package models

// Fund is the database row shape for funds.
type Fund struct {
	FundID      string `json:"fundID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// RoleFundAccess is the database row shape for role-fund grants.
type RoleFundAccess struct {
	RoleID string `json:"roleID"`
	FundID string `json:"fundID"`
	Scope  string `json:"scope"`
}

// EffectiveFundAccess is one row of the effective_fund_access view: the
// highest scope a user reaches on a fund through any held role, with the
// admin/owner override already applied by the view.
type EffectiveFundAccess struct {
	UserID   string `json:"userID"`
	FundID   string `json:"fundID"`
	FundName string `json:"fundName"`
	Scope    string `json:"scope"`
}
