package services

import (
	"context"
	"errors"
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
	"github.com/novatrust/funds_transfer_app/internal/utils"
	"github.com/novatrust/funds_transfer_app/pkg/config"
)

// ErrInvalidCredentials is returned for any login failure; it does not reveal
// whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	cfg          *config.Config
}

// NewCustomerService creates the customer registration/auth service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, cfg *config.Config) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		cfg:          cfg,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// Register creates a new customer with a bcrypt-hashed password.
func (s *customerService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.customerRepo.FindCustomerByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	customerID := uuid.NewString()
	customer := domain.Customer{
		CustomerID:   customerID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     customerID,
			LastUpdatedAt: now,
			LastUpdatedBy: customerID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer registered", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// Login verifies credentials and issues a signed JWT.
func (s *customerService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find customer: %w", err)
	}

	if !utils.VerifyPassword(req.Password, customer.PasswordHash) {
		logger.Warn("Login failed", slog.String("customer_id", customer.CustomerID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(customer.CustomerID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, customer, nil
}
