package services

import (
	"context"

	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeeResolver computes the fee for a transfer type. Pure and deterministic.
type FeeResolver interface {
	ResolveFee(transferType domain.TransferType) decimal.Decimal
}

// TransferSvcFacade is the caller-facing API of the funds transfer engine.
//
// The one-shot path (ResolveFee / ValidateTransferRequest / ExecuteTransfer)
// serves programmatic callers; the session methods drive the multi-step
// review-and-confirm flow used by the portal UI.
type TransferSvcFacade interface {
	FeeResolver

	// ValidateTransferRequest checks the request against account state and
	// transfer-type rules without side effects.
	ValidateTransferRequest(ctx context.Context, customerID string, req domain.TransferRequest) error

	// ExecuteTransfer validates, resolves the fee and applies the transfer
	// atomically. It is NOT idempotent: repeating an identical request moves
	// the money again.
	ExecuteTransfer(ctx context.Context, customerID string, req domain.TransferRequest) (*domain.TransferOutcome, error)

	// BeginSession starts a transfer session in the Collecting state.
	BeginSession(ctx context.Context, customerID string) (*domain.TransferSession, error)

	// GetSession retrieves the customer's session.
	GetSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error)

	// ReviewSession validates the request and, on success, computes the fee
	// and moves Collecting -> Reviewing. On a validation failure the session
	// stays in Collecting and the reason is returned.
	ReviewSession(ctx context.Context, sessionID string, customerID string, req domain.TransferRequest) (*domain.TransferSession, error)

	// ConfirmSession applies the reviewed transfer: Reviewing -> Completed on
	// success, Reviewing -> Failed on an execution error (generic message,
	// cause logged only).
	ConfirmSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error)

	// BackSession moves Reviewing -> Collecting, retaining the request.
	BackSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error)

	// RestartSession moves Failed -> Collecting for another attempt.
	RestartSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error)
}
