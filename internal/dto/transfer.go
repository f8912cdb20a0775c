package dto

import (
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest is the payload for validating or executing a transfer.
// Field presence is deliberately not enforced by binding: the engine's
// validator owns those checks so the caller gets the specific failure reason.
type TransferRequest struct {
	FromAccountID     string          `json:"fromAccountID"`
	ToAccountID       string          `json:"toAccountID"`
	TransferType      string          `json:"transferType"`
	Amount            decimal.Decimal `json:"amount"`
	RecipientName     string          `json:"recipientName"`
	RecipientBank     string          `json:"recipientBank"`
	RoutingNumber     string          `json:"routingNumber"`
	AccountNumber     string          `json:"accountNumber"`
	SwiftCode         string          `json:"swiftCode"`
	RecipientCountry  string          `json:"recipientCountry"`
	RecipientAddress  string          `json:"recipientAddress"`
	PurposeOfTransfer string          `json:"purposeOfTransfer"`
	Memo              string          `json:"memo"`
}

// ToDomain converts the payload to the engine's request type.
func (r TransferRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		FromAccountID:     r.FromAccountID,
		ToAccountID:       r.ToAccountID,
		TransferType:      domain.TransferType(r.TransferType),
		Amount:            r.Amount,
		RecipientName:     r.RecipientName,
		RecipientBank:     r.RecipientBank,
		RoutingNumber:     r.RoutingNumber,
		AccountNumber:     r.AccountNumber,
		SwiftCode:         r.SwiftCode,
		RecipientCountry:  r.RecipientCountry,
		RecipientAddress:  r.RecipientAddress,
		PurposeOfTransfer: r.PurposeOfTransfer,
		Memo:              r.Memo,
	}
}

// FeeResponse is a fee quote for a transfer type.
type FeeResponse struct {
	TransferType string          `json:"transferType"`
	Fee          decimal.Decimal `json:"fee"`
}

// ValidationResponse is the verdict of a dry-run validation.
type ValidationResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// TransferResponse is the result of a successful transfer execution.
type TransferResponse struct {
	Reference             string           `json:"reference"`
	ProcessingTime        string           `json:"processingTime"`
	NewSourceBalance      decimal.Decimal  `json:"newSourceBalance"`
	NewDestinationBalance *decimal.Decimal `json:"newDestinationBalance,omitempty"`
}

// SessionResponse is the API representation of a transfer session.
type SessionResponse struct {
	SessionID          string              `json:"sessionID"`
	State              domain.SessionState `json:"state"`
	Request            TransferRequest     `json:"request"`
	Fee                decimal.Decimal     `json:"fee"`
	Reference          string              `json:"reference,omitempty"`
	ProcessingEstimate string              `json:"processingEstimate,omitempty"`
	FailureReason      string              `json:"failureReason,omitempty"`
}

// ToSessionResponse maps a domain session to its API representation.
func ToSessionResponse(s *domain.TransferSession) SessionResponse {
	return SessionResponse{
		SessionID: s.SessionID,
		State:     s.State,
		Request: TransferRequest{
			FromAccountID:     s.Request.FromAccountID,
			ToAccountID:       s.Request.ToAccountID,
			TransferType:      string(s.Request.TransferType),
			Amount:            s.Request.Amount,
			RecipientName:     s.Request.RecipientName,
			RecipientBank:     s.Request.RecipientBank,
			RoutingNumber:     s.Request.RoutingNumber,
			AccountNumber:     s.Request.AccountNumber,
			SwiftCode:         s.Request.SwiftCode,
			RecipientCountry:  s.Request.RecipientCountry,
			RecipientAddress:  s.Request.RecipientAddress,
			PurposeOfTransfer: s.Request.PurposeOfTransfer,
			Memo:              s.Request.Memo,
		},
		Fee:                s.Fee,
		Reference:          s.Reference,
		ProcessingEstimate: s.ProcessingEstimate,
		FailureReason:      s.FailureReason,
	}
}
