package dto

import (
	"time"

	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for opening a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CREDIT INVESTMENT BUSINESS"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	Balance      decimal.Decimal    `json:"balance"`
	IsActive     bool               `json:"isActive"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ToAccountResponse maps a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		AccountType:  a.AccountType,
		CurrencyCode: a.CurrencyCode,
		Balance:      a.Balance,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// ListTransactionsParams holds pagination parameters for ledger listings.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is the API representation of a ledger record.
type TransactionResponse struct {
	TransactionID   string              `json:"transactionID"`
	Reference       string              `json:"reference"`
	AccountID       string              `json:"accountID"`
	Amount          decimal.Decimal     `json:"amount"`
	EntryType       domain.EntryType    `json:"entryType"`
	Category        domain.Category     `json:"category"`
	Description     string              `json:"description"`
	Status          domain.RecordStatus `json:"status"`
	TransactionDate time.Time           `json:"transactionDate"`
}

// ToTransactionResponses maps domain ledger records to their API form.
func ToTransactionResponses(records []domain.TransactionRecord) []TransactionResponse {
	out := make([]TransactionResponse, len(records))
	for i, r := range records {
		out[i] = TransactionResponse{
			TransactionID:   r.TransactionID,
			Reference:       r.Reference,
			AccountID:       r.AccountID,
			Amount:          r.Amount,
			EntryType:       r.EntryType,
			Category:        r.Category,
			Description:     r.Description,
			Status:          r.Status,
			TransactionDate: r.TransactionDate,
		}
	}
	return out
}

// ListTransactionsResponse is a page of ledger records.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
