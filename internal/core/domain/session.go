package domain

import (
	"github.com/shopspring/decimal"
)

// SessionState is the state of a transfer session.
//
// Collecting -> Reviewing on a successful review; Reviewing -> Completed or
// Failed on confirm; Reviewing -> Collecting on back. Completed is terminal;
// Failed permits only a restart back to Collecting.
type SessionState string

const (
	SessionCollecting SessionState = "COLLECTING"
	SessionReviewing  SessionState = "REVIEWING"
	SessionCompleted  SessionState = "COMPLETED"
	SessionFailed     SessionState = "FAILED"
)

// TransferSession carries the state of one user-driven transfer flow from
// form entry through confirmation. Sessions are ephemeral, per-process state.
type TransferSession struct {
	SessionID  string          `json:"sessionID"`
	CustomerID string          `json:"customerID"`
	State      SessionState    `json:"state"`
	Request    TransferRequest `json:"request"`
	Fee        decimal.Decimal `json:"fee"`

	// Populated on completion.
	Reference          string `json:"reference,omitempty"`
	ProcessingEstimate string `json:"processingEstimate,omitempty"`

	// Populated on failure; generic user-facing message only.
	FailureReason string `json:"failureReason,omitempty"`
}
