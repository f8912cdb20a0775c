package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord mirrors the transactions table row.
type TransactionRecord struct {
	TransactionID   string          `db:"transaction_id"`
	Reference       string          `db:"reference"`
	AccountID       string          `db:"account_id"`
	CustomerID      string          `db:"customer_id"`
	Amount          decimal.Decimal `db:"amount"`
	EntryType       string          `db:"entry_type"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	Status          string          `db:"status"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
	LastUpdatedAt   time.Time       `db:"last_updated_at"`
	LastUpdatedBy   string          `db:"last_updated_by"`
}
