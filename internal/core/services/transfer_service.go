package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portsrepo "github.com/novatrust/funds_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/novatrust/funds_transfer_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// genericFailureMessage is the only failure detail shown to the end user;
// the underlying cause is logged, never surfaced.
const genericFailureMessage = "Transfer failed, please try again"

// transferService orchestrates the funds transfer engine: validator, fee
// resolver and ledger mutator, plus the session state machine driving the
// portal's review-and-confirm flow.
//
// Sessions are ephemeral per-process state guarded by a mutex. Ledger and
// balance consistency does not depend on them; the pg repository serializes
// concurrent transfers on the same account with row locks.
type transferService struct {
	accountRepo    portsrepo.AccountRepositoryFacade
	validator      *TransferValidator
	feeResolver    portssvc.FeeResolver
	ledger         *LedgerService
	confirmTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*domain.TransferSession
}

// NewTransferService creates the transfer engine facade.
func NewTransferService(accountRepo portsrepo.AccountRepositoryFacade, validator *TransferValidator, feeResolver portssvc.FeeResolver, ledger *LedgerService, confirmTimeout time.Duration) portssvc.TransferSvcFacade {
	return &transferService{
		accountRepo:    accountRepo,
		validator:      validator,
		feeResolver:    feeResolver,
		ledger:         ledger,
		confirmTimeout: confirmTimeout,
		sessions:       make(map[string]*domain.TransferSession),
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// ResolveFee implements the fee quote API.
func (s *transferService) ResolveFee(transferType domain.TransferType) decimal.Decimal {
	return s.feeResolver.ResolveFee(transferType)
}

// resolveAccounts fetches the source (and, for internal transfers, the
// destination) account and checks customer ownership of the source. A nil
// account is returned for IDs that are empty or unresolvable so the
// validator can produce the specific failure.
func (s *transferService) resolveAccounts(ctx context.Context, customerID string, req domain.TransferRequest) (*domain.Account, *domain.Account, error) {
	var source, dest *domain.Account

	if req.FromAccountID != "" {
		acc, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to resolve source account: %w", err)
		}
		if acc != nil {
			if acc.CustomerID != customerID {
				// Obscure existence of other customers' accounts.
				return nil, nil, fmt.Errorf("%w: source account %s", apperrors.ErrNotFound, req.FromAccountID)
			}
			source = acc
		}
	}

	if req.TransferType.IsInternal() && req.ToAccountID != "" {
		acc, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to resolve destination account: %w", err)
		}
		if acc != nil && acc.CustomerID == customerID {
			dest = acc
		}
	}

	return source, dest, nil
}

// ValidateTransferRequest checks the request without side effects.
func (s *transferService) ValidateTransferRequest(ctx context.Context, customerID string, req domain.TransferRequest) error {
	source, dest, err := s.resolveAccounts(ctx, customerID, req)
	if err != nil {
		return err
	}
	return s.validator.Validate(req, source, dest)
}

// ExecuteTransfer is the one-shot path: validate, resolve fee, apply.
// It is not idempotent; an identical second call moves the money again.
func (s *transferService) ExecuteTransfer(ctx context.Context, customerID string, req domain.TransferRequest) (*domain.TransferOutcome, error) {
	if err := s.ValidateTransferRequest(ctx, customerID, req); err != nil {
		return nil, err
	}

	fee := s.feeResolver.ResolveFee(req.TransferType)

	applyCtx, cancel := context.WithTimeout(ctx, s.confirmTimeout)
	defer cancel()

	return s.ledger.ApplyTransfer(applyCtx, customerID, req, fee)
}

// BeginSession starts a session in the Collecting state.
func (s *transferService) BeginSession(ctx context.Context, customerID string) (*domain.TransferSession, error) {
	session := &domain.TransferSession{
		SessionID:  uuid.NewString(),
		CustomerID: customerID,
		State:      domain.SessionCollecting,
		Fee:        decimal.Zero,
	}

	s.mu.Lock()
	s.sessions[session.SessionID] = session
	s.mu.Unlock()

	return snapshot(session), nil
}

// GetSession retrieves the customer's session.
func (s *transferService) GetSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, err := s.lookupLocked(sessionID, customerID)
	if err != nil {
		return nil, err
	}
	return snapshot(session), nil
}

// ReviewSession validates the request and transitions Collecting -> Reviewing.
// On a validation failure the session stays in Collecting with the request
// retained, and the reason is returned to the caller.
func (s *transferService) ReviewSession(ctx context.Context, sessionID string, customerID string, req domain.TransferRequest) (*domain.TransferSession, error) {
	s.mu.Lock()
	session, err := s.lookupLocked(sessionID, customerID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.State != domain.SessionCollecting {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: session is %s, expected %s", apperrors.ErrConflict, session.State, domain.SessionCollecting)
	}
	session.Request = req
	// Snapshot while still holding the lock; a concurrent call on the same
	// session may mutate it once we release.
	collecting := snapshot(session)
	s.mu.Unlock()

	if err := s.ValidateTransferRequest(ctx, customerID, req); err != nil {
		return collecting, err
	}

	s.mu.Lock()
	session.Fee = s.feeResolver.ResolveFee(req.TransferType)
	session.State = domain.SessionReviewing
	result := snapshot(session)
	s.mu.Unlock()

	return result, nil
}

// ConfirmSession applies the reviewed transfer. An execution failure moves
// the session to Failed with a generic message; the cause is only logged.
func (s *transferService) ConfirmSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	session, err := s.lookupLocked(sessionID, customerID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.State != domain.SessionReviewing {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: session is %s, expected %s", apperrors.ErrConflict, session.State, domain.SessionReviewing)
	}
	req := session.Request
	fee := session.Fee
	s.mu.Unlock()

	applyCtx, cancel := context.WithTimeout(ctx, s.confirmTimeout)
	defer cancel()

	outcome, err := s.ledger.ApplyTransfer(applyCtx, customerID, req, fee)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		logger.Error("Transfer confirmation failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		session.State = domain.SessionFailed
		session.FailureReason = genericFailureMessage
		return snapshot(session), nil
	}

	session.State = domain.SessionCompleted
	session.Reference = outcome.Reference
	session.ProcessingEstimate = req.TransferType.ProcessingEstimate()
	return snapshot(session), nil
}

// BackSession moves Reviewing -> Collecting; the request fields are retained.
func (s *transferService) BackSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookupLocked(sessionID, customerID)
	if err != nil {
		return nil, err
	}
	if session.State != domain.SessionReviewing {
		return nil, fmt.Errorf("%w: session is %s, expected %s", apperrors.ErrConflict, session.State, domain.SessionReviewing)
	}
	session.State = domain.SessionCollecting
	return snapshot(session), nil
}

// RestartSession moves Failed -> Collecting for another attempt.
func (s *transferService) RestartSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookupLocked(sessionID, customerID)
	if err != nil {
		return nil, err
	}
	if session.State != domain.SessionFailed {
		return nil, fmt.Errorf("%w: session is %s, expected %s", apperrors.ErrConflict, session.State, domain.SessionFailed)
	}
	session.State = domain.SessionCollecting
	session.FailureReason = ""
	return snapshot(session), nil
}

// lookupLocked finds a session; callers must hold s.mu. Sessions belonging
// to other customers are reported as not found.
func (s *transferService) lookupLocked(sessionID string, customerID string) (*domain.TransferSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.CustomerID != customerID {
		return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
	}
	return session, nil
}

func snapshot(session *domain.TransferSession) *domain.TransferSession {
	copied := *session
	return &copied
}
