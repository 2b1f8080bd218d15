package mapping

import (
	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/models"
)

// ToModelFund converts a domain Fund to a model Fund
func ToModelFund(d domain.Fund) models.Fund {
	return models.Fund{
		FundID:      d.FundID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFund converts a model Fund to a domain Fund
func ToDomainFund(m models.Fund) domain.Fund {
	return domain.Fund{
		FundID:      m.FundID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFundAccess converts an effective_fund_access view row to domain FundAccess
func ToDomainFundAccess(m models.EffectiveFundAccess) domain.FundAccess {
	return domain.FundAccess{
		FundID:   m.FundID,
		FundName: m.FundName,
		Scope:    domain.AccessScope(m.Scope),
	}
}

// ToDomainFundAccessSlice converts a slice of view rows to domain FundAccess
func ToDomainFundAccessSlice(ms []models.EffectiveFundAccess) []domain.FundAccess {
	ds := make([]domain.FundAccess, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFundAccess(m)
	}
	return ds
}
