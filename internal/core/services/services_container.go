package services

import (
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portsrepo "github.com/novatrust/funds_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/novatrust/funds_transfer_app/pkg/config"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies. The ledger mutator is reached only through the transfer
// engine; nothing else mutates balances.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.LedgerRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, cfg)

	feeResolver := NewFeeService(domain.DefaultFeeSchedule())
	validator := NewTransferValidator()
	ledger := NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Transfer = NewTransferService(repos.AccountRepo, validator, feeResolver, ledger, cfg.TransferTimeout)

	return container
}
