package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger record is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Category groups ledger records for statements and reconciliation.
type Category string

const (
	CategoryTransfer Category = "Transfer"
	CategoryFees     Category = "Fees"
)

// RecordStatus is the settlement state of a ledger record.
type RecordStatus string

const (
	StatusCompleted RecordStatus = "COMPLETED"
	StatusPending   RecordStatus = "PENDING"
)

// TransactionRecord is one append-only ledger row. Records are created once by
// the ledger repository and never updated or deleted.
//
// Amount is signed: negative for debits, positive for credits. The records of
// one internal transfer share a Reference and their amounts sum to zero; a fee
// record derives its reference as "FEE" + the principal's reference.
type TransactionRecord struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	Reference       string          `json:"reference"`
	AccountID       string          `json:"accountID"`
	CustomerID      string          `json:"customerID"`
	Amount          decimal.Decimal `json:"amount"`
	EntryType       EntryType       `json:"entryType"`
	Category        Category        `json:"category"`
	Description     string          `json:"description"`
	Status          RecordStatus    `json:"status"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}
