package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portsrepo "github.com/novatrust/funds_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/novatrust/funds_transfer_app/internal/dto"
	"github.com/novatrust/funds_transfer_app/internal/middleware"
)

const defaultTransactionPageSize = 20

// accountService provides account opening and lookup. It never mutates
// balances; that is the ledger's job.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account for the customer.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, customerID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		CustomerID:   customerID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		Balance:      req.OpeningBalance,
		Version:      1,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     customerID,
			LastUpdatedAt: now,
			LastUpdatedBy: customerID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves an account, obscuring accounts owned by other
// customers as not found.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, customerID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.CustomerID != customerID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// ListAccounts retrieves all of the customer's accounts.
func (s *accountService) ListAccounts(ctx context.Context, customerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks the customer's account inactive. Ledger history is
// retained; records are never deleted.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, accountID, customerID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, customerID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// ListAccountTransactions retrieves a page of ledger records for the
// customer's account, newest first.
func (s *accountService) ListAccountTransactions(ctx context.Context, accountID string, customerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.GetAccountByID(ctx, accountID, customerID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}

	records, nextToken, err := s.ledgerRepo.ListRecordsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(records),
		NextToken:    nextToken,
	}, nil
}
