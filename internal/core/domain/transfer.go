package domain

import (
	"github.com/shopspring/decimal"
)

// TransferType enumerates the supported funds movement kinds.
type TransferType string

const (
	TransferInternal      TransferType = "INTERNAL"
	TransferExternal      TransferType = "EXTERNAL"
	TransferWire          TransferType = "WIRE"
	TransferInternational TransferType = "INTERNATIONAL"
	TransferMobile        TransferType = "MOBILE"
)

// IsInternal reports whether the transfer moves money between two accounts
// held at this bank.
func (t TransferType) IsInternal() bool {
	return t == TransferInternal
}

// TransferRequest is the ephemeral input to the transfer engine. It is never
// persisted; only the resulting TransactionRecords are.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID"`
	ToAccountID   string          `json:"toAccountID"` // internal transfers only
	TransferType  TransferType    `json:"transferType"`
	Amount        decimal.Decimal `json:"amount"`

	// Recipient details; the required subset depends on TransferType.
	RecipientName     string `json:"recipientName"`
	RecipientBank     string `json:"recipientBank"`
	RoutingNumber     string `json:"routingNumber"`
	AccountNumber     string `json:"accountNumber"`
	SwiftCode         string `json:"swiftCode"`
	RecipientCountry  string `json:"recipientCountry"`
	RecipientAddress  string `json:"recipientAddress"`
	PurposeOfTransfer string `json:"purposeOfTransfer"`

	Memo string `json:"memo"`
}

// TransferOutcome is returned by the ledger mutator after a successful apply.
type TransferOutcome struct {
	Reference             string           `json:"reference"`
	NewSourceBalance      decimal.Decimal  `json:"newSourceBalance"`
	NewDestinationBalance *decimal.Decimal `json:"newDestinationBalance,omitempty"` // internal only
}

// ProcessingEstimate returns the user-facing completion estimate for a
// transfer type.
func (t TransferType) ProcessingEstimate() string {
	switch t {
	case TransferInternal:
		return "Instant"
	case TransferWire:
		return "Same day"
	default:
		return "1-3 business days"
	}
}
