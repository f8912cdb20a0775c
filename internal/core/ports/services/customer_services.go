package services

import (
	"context"

	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/novatrust/funds_transfer_app/internal/dto"
)

// CustomerSvcFacade defines customer registration and authentication.
type CustomerSvcFacade interface {
	// Register creates a new customer with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Customer, error)

	// Login verifies credentials and returns a signed JWT for the customer.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.Customer, error)
}
