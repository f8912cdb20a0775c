package mapping

import (
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/novatrust/funds_transfer_app/internal/models"
)

// ToModelTransactionRecord converts a domain ledger record to its database row.
func ToModelTransactionRecord(r domain.TransactionRecord) models.TransactionRecord {
	return models.TransactionRecord{
		TransactionID:   r.TransactionID,
		Reference:       r.Reference,
		AccountID:       r.AccountID,
		CustomerID:      r.CustomerID,
		Amount:          r.Amount,
		EntryType:       string(r.EntryType),
		Category:        string(r.Category),
		Description:     r.Description,
		Status:          string(r.Status),
		TransactionDate: r.TransactionDate,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
		LastUpdatedAt:   r.LastUpdatedAt,
		LastUpdatedBy:   r.LastUpdatedBy,
	}
}

// ToDomainTransactionRecord converts a database row to the domain record.
func ToDomainTransactionRecord(m models.TransactionRecord) domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID:   m.TransactionID,
		Reference:       m.Reference,
		AccountID:       m.AccountID,
		CustomerID:      m.CustomerID,
		Amount:          m.Amount,
		EntryType:       domain.EntryType(m.EntryType),
		Category:        domain.Category(m.Category),
		Description:     m.Description,
		Status:          domain.RecordStatus(m.Status),
		TransactionDate: m.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainCustomer converts a database row to the domain customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:   m.CustomerID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
