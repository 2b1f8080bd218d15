package mapping

import (
	"github.com/fondosar/backoffice_api/internal/core/domain"
	"github.com/fondosar/backoffice_api/internal/models"
)

// ToModelSettlement converts a domain Settlement header to a model Settlement
func ToModelSettlement(d domain.Settlement) models.Settlement {
	return models.Settlement{
		SettlementID:  d.SettlementID,
		FundID:        d.FundID,
		ClientID:      d.ClientID,
		PaymentMethod: d.PaymentMethod,
		IngresoBanco:  d.IngresoBanco,
		Impositivo:    d.Impositivo,
		Comments:      d.Comments,
		SettledAt:     d.SettledAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettlement converts a model Settlement header to a domain Settlement
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID:  m.SettlementID,
		FundID:        m.FundID,
		ClientID:      m.ClientID,
		PaymentMethod: m.PaymentMethod,
		IngresoBanco:  m.IngresoBanco,
		Impositivo:    m.Impositivo,
		Comments:      m.Comments,
		SettledAt:     m.SettledAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSettlementLine converts a domain SettlementLine to a model SettlementLine
func ToModelSettlementLine(d domain.SettlementLine) models.SettlementLine {
	return models.SettlementLine{
		LineID:       d.LineID,
		SettlementID: d.SettlementID,
		Kind:         string(d.Kind),
		Description:  d.Description,
		Amount:       d.Amount,
		InvoiceID:    d.InvoiceID,
	}
}

// ToDomainSettlementLine converts a model SettlementLine to a domain SettlementLine
func ToDomainSettlementLine(m models.SettlementLine) domain.SettlementLine {
	return domain.SettlementLine{
		LineID:       m.LineID,
		SettlementID: m.SettlementID,
		Kind:         domain.SettlementLineKind(m.Kind),
		Description:  m.Description,
		Amount:       m.Amount,
		InvoiceID:    m.InvoiceID,
	}
}

// ToDomainSettlementLineSlice converts model lines to domain lines
func ToDomainSettlementLineSlice(ms []models.SettlementLine) []domain.SettlementLine {
	ds := make([]domain.SettlementLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSettlementLine(m)
	}
	return ds
}
