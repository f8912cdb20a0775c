package services

import (
	"context"

	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/novatrust/funds_transfer_app/internal/dto"
)

// AccountSvcFacade defines the account operations exposed to handlers and to
// the transfer engine. Creation and deactivation come from the account-opening
// surface; balances are read here but mutated only through the ledger.
type AccountSvcFacade interface {
	// CreateAccount opens a new account for the customer.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, customerID string) (*domain.Account, error)

	// GetAccountByID retrieves an account owned by the customer.
	GetAccountByID(ctx context.Context, accountID string, customerID string) (*domain.Account, error)

	// ListAccounts retrieves all of the customer's accounts.
	ListAccounts(ctx context.Context, customerID string) ([]domain.Account, error)

	// DeactivateAccount marks the customer's account inactive.
	DeactivateAccount(ctx context.Context, accountID string, customerID string) error

	// ListAccountTransactions retrieves a page of ledger records for the
	// customer's account.
	ListAccountTransactions(ctx context.Context, accountID string, customerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
