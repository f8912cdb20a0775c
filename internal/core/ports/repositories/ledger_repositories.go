package repositories

import (
	"context"

	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerWriter applies transfers to the ledger. It is the only component
// permitted to mutate account balances or append transaction records.
type LedgerWriter interface {
	// SaveTransfer atomically applies the balance deltas and appends the
	// given records. Either everything lands or nothing does: the accounts in
	// balanceChanges are locked for the duration and their versions bumped.
	SaveTransfer(ctx context.Context, records []domain.TransactionRecord, balanceChanges map[string]decimal.Decimal) (map[string]domain.Account, error)
}

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// FindRecordsByReference retrieves the records sharing a transfer
	// reference (including the derived FEE reference).
	FindRecordsByReference(ctx context.Context, reference string) ([]domain.TransactionRecord, error)

	// ListRecordsByAccountID retrieves a page of records for an account,
	// newest first, using token-based keyset pagination.
	ListRecordsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error)
}

// LedgerRepositoryFacade combines ledger read and write interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
