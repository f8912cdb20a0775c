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
	"github.com/novatrust/funds_transfer_app/internal/middleware"
	"github.com/novatrust/funds_transfer_app/internal/utils"
	"github.com/shopspring/decimal"
)

// LedgerService is the ledger mutator: the only component that changes
// account balances or appends transaction records. Each transfer is applied
// through a single atomic repository call, so a failure never leaves the
// principal debited without its fee or its credit leg.
type LedgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) *LedgerService {
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// ApplyTransfer applies a validated transfer with the given fee. The caller
// is responsible for validation; this method only builds the ledger records
// and balance deltas and hands them to the repository as one unit.
func (s *LedgerService) ApplyTransfer(ctx context.Context, customerID string, req domain.TransferRequest, fee decimal.Decimal) (*domain.TransferOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	reference, err := utils.GenerateTransferReference(now)
	if err != nil {
		return nil, fmt.Errorf("%w: could not generate reference", apperrors.ErrTransferFailed)
	}

	accountIDs := []string{req.FromAccountID}
	if req.TransferType.IsInternal() {
		accountIDs = append(accountIDs, req.ToAccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for transfer", slog.String("error", err.Error()), slog.String("reference", reference))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTransferFailed, err)
	}
	source, ok := accounts[req.FromAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: source account %s", apperrors.ErrNotFound, req.FromAccountID)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     customerID,
		LastUpdatedAt: now,
		LastUpdatedBy: customerID,
	}

	var records []domain.TransactionRecord
	balanceChanges := make(map[string]decimal.Decimal)

	if req.TransferType.IsInternal() {
		dest, ok := accounts[req.ToAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: destination account %s", apperrors.ErrNotFound, req.ToAccountID)
		}

		balanceChanges[source.AccountID] = req.Amount.Neg()
		balanceChanges[dest.AccountID] = req.Amount

		records = append(records,
			domain.TransactionRecord{
				TransactionID:   uuid.NewString(),
				Reference:       reference,
				AccountID:       source.AccountID,
				CustomerID:      customerID,
				Amount:          req.Amount.Neg(),
				EntryType:       domain.Debit,
				Category:        domain.CategoryTransfer,
				Description:     fmt.Sprintf("Transfer to %s", dest.Name),
				Status:          domain.StatusCompleted,
				TransactionDate: now,
				AuditFields:     audit,
			},
			domain.TransactionRecord{
				TransactionID:   uuid.NewString(),
				Reference:       reference,
				AccountID:       dest.AccountID,
				CustomerID:      customerID,
				Amount:          req.Amount,
				EntryType:       domain.Credit,
				Category:        domain.CategoryTransfer,
				Description:     fmt.Sprintf("Transfer from %s", source.Name),
				Status:          domain.StatusCompleted,
				TransactionDate: now,
				AuditFields:     audit,
			},
		)
	} else {
		// The principal and fee debits compound: final balance is
		// original - amount - fee.
		totalDebit := req.Amount
		if fee.IsPositive() {
			totalDebit = totalDebit.Add(fee)
		}
		balanceChanges[source.AccountID] = totalDebit.Neg()

		records = append(records, domain.TransactionRecord{
			TransactionID:   uuid.NewString(),
			Reference:       reference,
			AccountID:       source.AccountID,
			CustomerID:      customerID,
			Amount:          req.Amount.Neg(),
			EntryType:       domain.Debit,
			Category:        domain.CategoryTransfer,
			Description:     transferDescription(req),
			Status:          transferStatus(req.TransferType),
			TransactionDate: now,
			AuditFields:     audit,
		})

		if fee.IsPositive() {
			records = append(records, domain.TransactionRecord{
				TransactionID:   uuid.NewString(),
				Reference:       utils.FeeReference(reference),
				AccountID:       source.AccountID,
				CustomerID:      customerID,
				Amount:          fee.Neg(),
				EntryType:       domain.Debit,
				Category:        domain.CategoryFees,
				Description:     feeDescription(req.TransferType),
				Status:          domain.StatusCompleted,
				TransactionDate: now,
				AuditFields:     audit,
			})
		}
	}

	updated, err := s.ledgerRepo.SaveTransfer(ctx, records, balanceChanges)
	if err != nil {
		logger.Error("Failed to apply transfer", slog.String("error", err.Error()), slog.String("reference", reference))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTransferFailed, err)
	}

	outcome := &domain.TransferOutcome{
		Reference:        reference,
		NewSourceBalance: updated[source.AccountID].Balance,
	}
	if req.TransferType.IsInternal() {
		destBalance := updated[req.ToAccountID].Balance
		outcome.NewDestinationBalance = &destBalance
	}

	logger.Info("Transfer applied",
		slog.String("reference", reference),
		slog.String("transfer_type", string(req.TransferType)),
		slog.String("amount", req.Amount.String()),
		slog.String("fee", fee.String()),
	)
	return outcome, nil
}

// transferStatus maps a transfer type to the settlement status of its
// principal debit record.
func transferStatus(t domain.TransferType) domain.RecordStatus {
	switch t {
	case domain.TransferWire, domain.TransferMobile:
		return domain.StatusCompleted
	default:
		return domain.StatusPending
	}
}

func transferDescription(req domain.TransferRequest) string {
	recipient := req.RecipientName
	if recipient == "" {
		recipient = req.AccountNumber
	}
	switch req.TransferType {
	case domain.TransferWire:
		return fmt.Sprintf("Wire Transfer to %s", recipient)
	case domain.TransferInternational:
		return fmt.Sprintf("International Wire to %s", recipient)
	case domain.TransferMobile:
		return fmt.Sprintf("Mobile Transfer to %s", recipient)
	default:
		return fmt.Sprintf("External Transfer to %s", recipient)
	}
}

func feeDescription(t domain.TransferType) string {
	switch t {
	case domain.TransferWire:
		return "Wire Transfer Fee"
	case domain.TransferInternational:
		return "International Wire Fee"
	default:
		return "External Transfer Fee"
	}
}
