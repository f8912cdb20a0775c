package services

import (
	"fmt"

	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
)

var (
	ErrMissingRequiredField    = fmt.Errorf("%w: source account and amount are required", apperrors.ErrValidation)
	ErrInvalidAmount           = fmt.Errorf("%w: amount must be a positive decimal", apperrors.ErrValidation)
	ErrInsufficientFunds       = fmt.Errorf("%w: insufficient funds in source account", apperrors.ErrValidation)
	ErrMissingDestination      = fmt.Errorf("%w: destination account is required for internal transfers", apperrors.ErrValidation)
	ErrSameAccount             = fmt.Errorf("%w: destination must differ from source account", apperrors.ErrValidation)
	ErrMissingRecipientDetails = fmt.Errorf("%w: recipient name, account number and routing number are required", apperrors.ErrValidation)
)

// TransferValidator checks a proposed transfer against account state and
// transfer-type rules. It has no side effects.
type TransferValidator struct{}

// NewTransferValidator creates a validator.
func NewTransferValidator() *TransferValidator {
	return &TransferValidator{}
}

// Validate runs the sequential checks, short-circuiting at the first failure.
// The ordering is part of the contract: it determines which message the user
// sees when several fields are bad at once.
//
// The balance check deliberately ignores the fee; the fee is a second debit
// applied with the principal, so a transfer can legitimately take the balance
// negative by up to the fee amount.
func (v *TransferValidator) Validate(req domain.TransferRequest, source *domain.Account, dest *domain.Account) error {
	if req.FromAccountID == "" || req.Amount.IsZero() {
		return ErrMissingRequiredField
	}

	if req.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if source == nil {
		return fmt.Errorf("%w: source account %s", apperrors.ErrNotFound, req.FromAccountID)
	}

	if req.Amount.GreaterThan(source.Balance) {
		return ErrInsufficientFunds
	}

	if req.TransferType.IsInternal() {
		if req.ToAccountID == "" || dest == nil {
			return ErrMissingDestination
		}
		if req.ToAccountID == req.FromAccountID {
			return ErrSameAccount
		}
	}

	if req.TransferType == domain.TransferExternal {
		if req.RecipientName == "" || req.AccountNumber == "" || req.RoutingNumber == "" {
			return ErrMissingRecipientDetails
		}
	}

	return nil
}
