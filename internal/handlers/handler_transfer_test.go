package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/novatrust/funds_transfer_app/internal/apperrors"
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/novatrust/funds_transfer_app/internal/dto"
	"github.com/novatrust/funds_transfer_app/internal/handlers"
	"github.com/novatrust/funds_transfer_app/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) ResolveFee(transferType domain.TransferType) decimal.Decimal {
	args := m.Called(transferType)
	return args.Get(0).(decimal.Decimal)
}
func (m *MockTransferService) ValidateTransferRequest(ctx context.Context, customerID string, req domain.TransferRequest) error {
	args := m.Called(ctx, customerID, req)
	return args.Error(0)
}
func (m *MockTransferService) ExecuteTransfer(ctx context.Context, customerID string, req domain.TransferRequest) (*domain.TransferOutcome, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferOutcome), args.Error(1)
}
func (m *MockTransferService) BeginSession(ctx context.Context, customerID string) (*domain.TransferSession, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferSession), args.Error(1)
}
func (m *MockTransferService) GetSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	args := m.Called(ctx, sessionID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferSession), args.Error(1)
}
func (m *MockTransferService) ReviewSession(ctx context.Context, sessionID string, customerID string, req domain.TransferRequest) (*domain.TransferSession, error) {
	args := m.Called(ctx, sessionID, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferSession), args.Error(1)
}
func (m *MockTransferService) ConfirmSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	args := m.Called(ctx, sessionID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferSession), args.Error(1)
}
func (m *MockTransferService) BackSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	args := m.Called(ctx, sessionID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferSession), args.Error(1)
}
func (m *MockTransferService) RestartSession(ctx context.Context, sessionID string, customerID string) (*domain.TransferSession, error) {
	args := m.Called(ctx, sessionID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferSession), args.Error(1)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Test Suite ---
type TransferHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockTransferService *MockTransferService
	jwtSecret           string
}

// generateTestToken creates a signed JWT for the test customer.
func (suite *TransferHandlerTestSuite) generateTestToken(customerID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fta-test",
		Subject:   customerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransferService = new(MockTransferService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{Transfer: suite.mockTransferService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *TransferHandlerTestSuite) performRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransferHandlerTestSuite) TestGetFee_Wire() {
	customerID := uuid.NewString()
	token := suite.generateTestToken(customerID)

	suite.mockTransferService.On("ResolveFee", domain.TransferWire).Return(decimal.NewFromFloat(25.00))

	w := suite.performRequest(http.MethodGet, "/api/v1/transfers/fees/WIRE", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FeeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("WIRE", resp.TransferType)
	suite.True(resp.Fee.Equal(decimal.NewFromFloat(25.00)))
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestGetFee_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transfers/fees/WIRE", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TransferHandlerTestSuite) TestValidateTransfer_InvalidVerdict() {
	customerID := uuid.NewString()
	token := suite.generateTestToken(customerID)

	body := dto.TransferRequest{
		FromAccountID: uuid.NewString(),
		TransferType:  string(domain.TransferInternal),
		Amount:        decimal.NewFromInt(50),
	}
	suite.mockTransferService.
		On("ValidateTransferRequest", mock.Anything, customerID, body.ToDomain()).
		Return(fmt.Errorf("%w: destination account is required", apperrors.ErrValidation))

	w := suite.performRequest(http.MethodPost, "/api/v1/transfers/validate", token, body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ValidationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Valid)
	suite.Contains(resp.Reason, "destination account is required")
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestExecuteTransfer_Success() {
	customerID := uuid.NewString()
	token := suite.generateTestToken(customerID)

	body := dto.TransferRequest{
		FromAccountID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		TransferType:  string(domain.TransferInternal),
		Amount:        decimal.NewFromInt(200),
	}
	destBalance := decimal.NewFromInt(700)
	outcome := &domain.TransferOutcome{
		Reference:             "TXN123456789",
		NewSourceBalance:      decimal.NewFromInt(800),
		NewDestinationBalance: &destBalance,
	}
	suite.mockTransferService.
		On("ExecuteTransfer", mock.Anything, customerID, body.ToDomain()).
		Return(outcome, nil)

	w := suite.performRequest(http.MethodPost, "/api/v1/transfers", token, body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TXN123456789", resp.Reference)
	suite.Equal("Instant", resp.ProcessingTime)
	suite.True(resp.NewSourceBalance.Equal(decimal.NewFromInt(800)))
	suite.Require().NotNil(resp.NewDestinationBalance)
	suite.True(resp.NewDestinationBalance.Equal(destBalance))
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestExecuteTransfer_ValidationFailure() {
	customerID := uuid.NewString()
	token := suite.generateTestToken(customerID)

	body := dto.TransferRequest{
		FromAccountID: uuid.NewString(),
		TransferType:  string(domain.TransferWire),
		Amount:        decimal.NewFromInt(1000000),
	}
	suite.mockTransferService.
		On("ExecuteTransfer", mock.Anything, customerID, body.ToDomain()).
		Return(nil, fmt.Errorf("%w: amount exceeds available balance", apperrors.ErrValidation))

	w := suite.performRequest(http.MethodPost, "/api/v1/transfers", token, body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestExecuteTransfer_GenericFailure() {
	customerID := uuid.NewString()
	token := suite.generateTestToken(customerID)

	body := dto.TransferRequest{
		FromAccountID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		TransferType:  string(domain.TransferInternal),
		Amount:        decimal.NewFromInt(10),
	}
	suite.mockTransferService.
		On("ExecuteTransfer", mock.Anything, customerID, body.ToDomain()).
		Return(nil, fmt.Errorf("%w: ledger write rejected", apperrors.ErrTransferFailed))

	w := suite.performRequest(http.MethodPost, "/api/v1/transfers", token, body)

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	// The underlying cause must not leak to the caller.
	suite.Equal("Transfer failed, please try again", resp["error"])
	suite.NotContains(resp["error"], "ledger")
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestReviewSession_ValidationFailureKeepsCollecting() {
	customerID := uuid.NewString()
	token := suite.generateTestToken(customerID)
	sessionID := uuid.NewString()

	body := dto.TransferRequest{
		FromAccountID: uuid.NewString(),
		TransferType:  string(domain.TransferInternal),
		Amount:        decimal.NewFromInt(50),
	}
	staleSession := &domain.TransferSession{
		SessionID:  sessionID,
		CustomerID: customerID,
		State:      domain.SessionCollecting,
		Request:    body.ToDomain(),
	}
	suite.mockTransferService.
		On("ReviewSession", mock.Anything, sessionID, customerID, body.ToDomain()).
		Return(staleSession, fmt.Errorf("%w: destination account is required", apperrors.ErrValidation))

	w := suite.performRequest(http.MethodPost, "/api/v1/transfer-sessions/"+sessionID+"/review", token, body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.SessionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.SessionCollecting, resp.State)
	suite.Contains(resp.FailureReason, "destination account is required")
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestConfirmSession_WrongState() {
	customerID := uuid.NewString()
	token := suite.generateTestToken(customerID)
	sessionID := uuid.NewString()

	suite.mockTransferService.
		On("ConfirmSession", mock.Anything, sessionID, customerID).
		Return(nil, fmt.Errorf("%w: session is not awaiting confirmation", apperrors.ErrConflict))

	w := suite.performRequest(http.MethodPost, "/api/v1/transfer-sessions/"+sessionID+"/confirm", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func TestTransferHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransferHandlerTestSuite))
}
