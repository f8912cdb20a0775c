package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/novatrust/funds_transfer_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires pgsql-backed repositories into the provider
// consumed by the service container.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(pool),
		LedgerRepo:   newPgxLedgerRepository(pool),
		CustomerRepo: newPgxCustomerRepository(pool),
	}
}
