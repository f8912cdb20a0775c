package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/novatrust/funds_transfer_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransferServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.TransferSvcFacade

	customerID string
	source     domain.Account
	dest       domain.Account
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)

	ledger := services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo)
	suite.service = services.NewTransferService(
		suite.mockAccountRepo,
		services.NewTransferValidator(),
		services.NewFeeService(domain.DefaultFeeSchedule()),
		ledger,
		5*time.Second,
	)

	suite.customerID = uuid.NewString()
	suite.source = domain.Account{
		AccountID:   uuid.NewString(),
		CustomerID:  suite.customerID,
		Name:        "Primary Checking",
		AccountType: domain.AccountTypeChecking,
		Balance:     decimal.NewFromInt(1000),
		Version:     1,
		IsActive:    true,
	}
	suite.dest = domain.Account{
		AccountID:   uuid.NewString(),
		CustomerID:  suite.customerID,
		Name:        "Rainy Day Savings",
		AccountType: domain.AccountTypeSavings,
		Balance:     decimal.NewFromInt(500),
		Version:     1,
		IsActive:    true,
	}
}

func (suite *TransferServiceTestSuite) internalRequest() domain.TransferRequest {
	return domain.TransferRequest{
		FromAccountID: suite.source.AccountID,
		ToAccountID:   suite.dest.AccountID,
		TransferType:  domain.TransferInternal,
		Amount:        decimal.NewFromInt(200),
	}
}

// expectResolve stubs the per-account lookups done during validation.
func (suite *TransferServiceTestSuite) expectResolve() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.dest.AccountID).Return(&suite.dest, nil)
}

// expectApply stubs the ledger path for a successful internal apply.
func (suite *TransferServiceTestSuite) expectApply() {
	accountsByID := map[string]domain.Account{
		suite.source.AccountID: suite.source,
		suite.dest.AccountID:   suite.dest,
	}
	suite.mockAccountRepo.
		On("FindAccountsByIDs", mock.Anything, []string{suite.source.AccountID, suite.dest.AccountID}).
		Return(accountsByID, nil)
	suite.mockLedgerRepo.
		On("SaveTransfer", mock.Anything, mock.Anything, mock.Anything).
		Return(applyDeltas(accountsByID, map[string]decimal.Decimal{
			suite.source.AccountID: decimal.NewFromInt(-200),
			suite.dest.AccountID:   decimal.NewFromInt(200),
		}), nil)
}

// --- One-shot path ---

func (suite *TransferServiceTestSuite) TestExecuteTransfer_Success() {
	ctx := context.Background()
	suite.expectResolve()
	suite.expectApply()

	outcome, err := suite.service.ExecuteTransfer(ctx, suite.customerID, suite.internalRequest())

	suite.Require().NoError(err)
	suite.True(outcome.NewSourceBalance.Equal(decimal.NewFromInt(800)))
	suite.Require().NotNil(outcome.NewDestinationBalance)
	suite.True(outcome.NewDestinationBalance.Equal(decimal.NewFromInt(700)))
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_ValidationFailureMutatesNothing() {
	ctx := context.Background()
	suite.expectResolve()

	req := suite.internalRequest()
	req.Amount = decimal.NewFromInt(5000) // more than the balance

	outcome, err := suite.service.ExecuteTransfer(ctx, suite.customerID, req)

	suite.Require().Error(err)
	suite.Nil(outcome)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
	// The ledger is never touched on a validation failure.
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_NotIdempotent() {
	ctx := context.Background()
	suite.expectResolve()
	suite.expectApply()

	req := suite.internalRequest()

	_, err := suite.service.ExecuteTransfer(ctx, suite.customerID, req)
	suite.Require().NoError(err)
	_, err = suite.service.ExecuteTransfer(ctx, suite.customerID, req)
	suite.Require().NoError(err)

	// An identical second request debits again; there is no dedupe key.
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SaveTransfer", 2)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_ForeignSourceObscured() {
	ctx := context.Background()
	otherCustomersAccount := suite.source
	otherCustomersAccount.CustomerID = uuid.NewString()
	suite.mockAccountRepo.
		On("FindAccountByID", mock.Anything, suite.source.AccountID).
		Return(&otherCustomersAccount, nil)

	req := suite.internalRequest()
	outcome, err := suite.service.ExecuteTransfer(ctx, suite.customerID, req)

	suite.Require().Error(err)
	suite.Nil(outcome)
	// Another customer's account reads as not found, not forbidden.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Session state machine ---

func (suite *TransferServiceTestSuite) TestSession_HappyPath() {
	ctx := context.Background()
	suite.expectResolve()
	suite.expectApply()

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)
	suite.Equal(domain.SessionCollecting, session.State)

	session, err = suite.service.ReviewSession(ctx, session.SessionID, suite.customerID, suite.internalRequest())
	suite.Require().NoError(err)
	suite.Equal(domain.SessionReviewing, session.State)
	suite.True(session.Fee.IsZero()) // internal transfers are free

	session, err = suite.service.ConfirmSession(ctx, session.SessionID, suite.customerID)
	suite.Require().NoError(err)
	suite.Equal(domain.SessionCompleted, session.State)
	suite.Regexp(referencePattern, session.Reference)
	suite.Equal("Instant", session.ProcessingEstimate)
}

func (suite *TransferServiceTestSuite) TestSession_ReviewFailureStaysCollecting() {
	ctx := context.Background()
	suite.expectResolve()

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)

	req := suite.internalRequest()
	req.ToAccountID = ""

	reviewed, err := suite.service.ReviewSession(ctx, session.SessionID, suite.customerID, req)
	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMissingDestination)
	// The session survives with the submitted fields retained for editing.
	suite.Require().NotNil(reviewed)
	suite.Equal(domain.SessionCollecting, reviewed.State)
	suite.Equal(req.FromAccountID, reviewed.Request.FromAccountID)
	suite.True(reviewed.Request.Amount.Equal(req.Amount))
}

func (suite *TransferServiceTestSuite) TestSession_BackRetainsRequest() {
	ctx := context.Background()
	suite.expectResolve()

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)

	req := suite.internalRequest()
	_, err = suite.service.ReviewSession(ctx, session.SessionID, suite.customerID, req)
	suite.Require().NoError(err)

	backed, err := suite.service.BackSession(ctx, session.SessionID, suite.customerID)
	suite.Require().NoError(err)
	suite.Equal(domain.SessionCollecting, backed.State)
	suite.Equal(req.ToAccountID, backed.Request.ToAccountID)
	suite.True(backed.Request.Amount.Equal(req.Amount))

	// A second back is rejected; the session is no longer reviewing.
	_, err = suite.service.BackSession(ctx, session.SessionID, suite.customerID)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransferServiceTestSuite) TestSession_ConfirmFailureIsGeneric() {
	ctx := context.Background()
	suite.expectResolve()

	accountsByID := map[string]domain.Account{
		suite.source.AccountID: suite.source,
		suite.dest.AccountID:   suite.dest,
	}
	suite.mockAccountRepo.
		On("FindAccountsByIDs", mock.Anything, []string{suite.source.AccountID, suite.dest.AccountID}).
		Return(accountsByID, nil)
	suite.mockLedgerRepo.
		On("SaveTransfer", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)
	_, err = suite.service.ReviewSession(ctx, session.SessionID, suite.customerID, suite.internalRequest())
	suite.Require().NoError(err)

	confirmed, err := suite.service.ConfirmSession(ctx, session.SessionID, suite.customerID)

	// The failure is reported through the session, not as an error.
	suite.Require().NoError(err)
	suite.Equal(domain.SessionFailed, confirmed.State)
	suite.Equal("Transfer failed, please try again", confirmed.FailureReason)
	suite.NotContains(confirmed.FailureReason, assert.AnError.Error())
}

func (suite *TransferServiceTestSuite) TestSession_RestartAfterFailure() {
	ctx := context.Background()
	suite.expectResolve()

	accountsByID := map[string]domain.Account{
		suite.source.AccountID: suite.source,
		suite.dest.AccountID:   suite.dest,
	}
	suite.mockAccountRepo.
		On("FindAccountsByIDs", mock.Anything, []string{suite.source.AccountID, suite.dest.AccountID}).
		Return(accountsByID, nil)
	suite.mockLedgerRepo.
		On("SaveTransfer", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)
	_, err = suite.service.ReviewSession(ctx, session.SessionID, suite.customerID, suite.internalRequest())
	suite.Require().NoError(err)
	failed, err := suite.service.ConfirmSession(ctx, session.SessionID, suite.customerID)
	suite.Require().NoError(err)
	suite.Equal(domain.SessionFailed, failed.State)

	restarted, err := suite.service.RestartSession(ctx, session.SessionID, suite.customerID)
	suite.Require().NoError(err)
	suite.Equal(domain.SessionCollecting, restarted.State)
	suite.Empty(restarted.FailureReason)
}

func (suite *TransferServiceTestSuite) TestSession_ConfirmFromWrongState() {
	ctx := context.Background()

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)

	// Confirm straight from Collecting is rejected.
	_, err = suite.service.ConfirmSession(ctx, session.SessionID, suite.customerID)
	suite.ErrorIs(err, apperrors.ErrConflict)

	// Restart from Collecting is rejected too.
	_, err = suite.service.RestartSession(ctx, session.SessionID, suite.customerID)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransferServiceTestSuite) TestSession_ForeignCustomerObscured() {
	ctx := context.Background()

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)

	_, err = suite.service.GetSession(ctx, session.SessionID, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransferServiceTestSuite) TestSession_ConcurrentReviewSnapshotsAreStable() {
	ctx := context.Background()
	suite.expectResolve()

	session, err := suite.service.BeginSession(ctx, suite.customerID)
	suite.Require().NoError(err)

	valid := suite.internalRequest()
	invalid := suite.internalRequest()
	invalid.ToAccountID = ""

	// A failing and a succeeding review race on the same session; the
	// failure-path snapshot must be taken under the lock, so the concurrent
	// success never bleeds into it.
	for i := 0; i < 50; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			reviewed, reviewErr := suite.service.ReviewSession(ctx, session.SessionID, suite.customerID, invalid)
			if errors.Is(reviewErr, services.ErrMissingDestination) {
				suite.Equal(domain.SessionCollecting, reviewed.State)
				suite.True(reviewed.Fee.IsZero())
			}
		}()
		go func() {
			defer wg.Done()
			_, _ = suite.service.ReviewSession(ctx, session.SessionID, suite.customerID, valid)
		}()
		wg.Wait()

		// Return to Collecting for the next round; a conflict just means
		// the successful review lost its race this time.
		if _, backErr := suite.service.BackSession(ctx, session.SessionID, suite.customerID); backErr != nil {
			suite.Require().ErrorIs(backErr, apperrors.ErrConflict)
		}
	}
}

func (suite *TransferServiceTestSuite) TestSession_UnknownSession() {
	_, err := suite.service.GetSession(context.Background(), uuid.NewString(), suite.customerID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
