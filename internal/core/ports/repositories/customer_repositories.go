package repositories

import (
	"context"

	"github.com/novatrust/funds_transfer_app/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence operations for customers.
type CustomerRepositoryFacade interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// FindCustomerByID retrieves a customer by ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByEmail retrieves a customer by email address.
	FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
}
