package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portsrepo "github.com/novatrust/funds_transfer_app/internal/core/ports/repositories"
	"github.com/novatrust/funds_transfer_app/internal/models"
	"github.com/novatrust/funds_transfer_app/internal/utils"
	"github.com/novatrust/funds_transfer_app/internal/utils/mapping"
	"github.com/novatrust/funds_transfer_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, reference, account_id, customer_id, amount, entry_type, category, description, status, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the transaction ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveTransfer applies the balance deltas and appends the given records in a
// single database transaction. The affected account rows are locked FOR UPDATE
// in a deterministic order to avoid deadlocks between concurrent transfers.
func (r *PgxLedgerRepository) SaveTransfer(ctx context.Context, records []domain.TransactionRecord, balanceChanges map[string]decimal.Decimal) (map[string]domain.Account, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to save")
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	locked, err := lockAccounts(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, accountID := range accountIDs {
		if _, ok := locked[accountID]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
	}

	now := time.Now()
	updated := make(map[string]domain.Account, len(locked))
	for _, accountID := range accountIDs {
		acc := locked[accountID]
		acc.Balance = acc.Balance.Add(balanceChanges[accountID])
		acc.Version++
		acc.LastUpdatedAt = now

		tag, err := tx.Exec(ctx, `
			UPDATE accounts
			SET balance = $2, version = version + 1, last_updated_at = $3
			WHERE account_id = $1;
		`, accountID, acc.Balance, now)
		if err != nil {
			return nil, fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
		}
		if tag.RowsAffected() != 1 {
			return nil, fmt.Errorf("unexpected row count updating account %s", accountID)
		}
		updated[accountID] = acc
	}

	batch := &pgx.Batch{}
	insert := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, rec := range records {
		m := mapping.ToModelTransactionRecord(rec)
		batch.Queue(insert,
			m.TransactionID,
			m.Reference,
			m.AccountID,
			m.CustomerID,
			m.Amount,
			m.EntryType,
			m.Category,
			m.Description,
			m.Status,
			m.TransactionDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("failed to insert transaction record: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close record batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

func lockAccounts(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		locked[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locked accounts: %w", err)
	}
	return locked, nil
}

func scanRecord(row pgx.Row) (*domain.TransactionRecord, error) {
	var m models.TransactionRecord
	err := row.Scan(
		&m.TransactionID,
		&m.Reference,
		&m.AccountID,
		&m.CustomerID,
		&m.Amount,
		&m.EntryType,
		&m.Category,
		&m.Description,
		&m.Status,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	rec := mapping.ToDomainTransactionRecord(m)
	return &rec, nil
}

// FindRecordsByReference retrieves the records sharing a transfer reference,
// including the derived fee record.
func (r *PgxLedgerRepository) FindRecordsByReference(ctx context.Context, reference string) ([]domain.TransactionRecord, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference = $1 OR reference = $2
		ORDER BY created_at, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, reference, utils.FeeReference(reference))
	if err != nil {
		return nil, fmt.Errorf("failed to query records for reference %s: %w", reference, err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records for reference %s", apperrors.ErrNotFound, reference)
	}
	return records, nil
}

// ListRecordsByAccountID retrieves a page of records for an account, newest
// first, using a keyset cursor over (transaction_date, transaction_id).
func (r *PgxLedgerRepository) ListRecordsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	args := []any{accountID, limit + 1}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (transaction_date, transaction_id) < ($3, $4)`
		args = append(args, lastDate, lastID)
	}
	query += ` ORDER BY transaction_date DESC, transaction_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query records for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read record rows: %w", err)
	}

	var newNextToken *string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.TransactionID)
		newNextToken = &token
	}
	return records, newNextToken, nil
}
