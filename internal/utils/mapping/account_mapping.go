package mapping

import (
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/novatrust/funds_transfer_app/internal/models"
)

// ToModelAccount converts a domain account to its database row representation.
func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:     a.AccountID,
		CustomerID:    a.CustomerID,
		Name:          a.Name,
		AccountType:   string(a.AccountType),
		CurrencyCode:  a.CurrencyCode,
		Balance:       a.Balance,
		Version:       a.Version,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ToDomainAccount converts a database row to the domain account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		CustomerID:   m.CustomerID,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		Version:      m.Version,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
