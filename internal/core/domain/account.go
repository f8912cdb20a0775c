package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the product type of a money-holding account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCredit     AccountType = "CREDIT" // balance interpreted as amount owed
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeBusiness   AccountType = "BUSINESS"
)

// Account represents a money-holding container owned by a customer.
// Balance is mutated only by the ledger repository; every other component
// treats it as read-only.
type Account struct {
	AccountID    string          `json:"accountID"`  // Primary Key (UUID)
	CustomerID   string          `json:"customerID"` // FK -> customers.customer_id
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Version      int64           `json:"version"` // bumped on every balance write
	IsActive     bool            `json:"isActive"`
	AuditFields
}
