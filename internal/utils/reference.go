package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// FeeReferencePrefix derives a fee record's reference from the principal's.
const FeeReferencePrefix = "FEE"

// GenerateTransferReference builds a customer-facing transfer reference:
// "TXN" + last 6 digits of the unix timestamp + 3 zero-padded random digits.
// Uniqueness is best-effort only; ledger rows are keyed by UUID, not by this.
func GenerateTransferReference(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to read random digits: %w", err)
	}
	return fmt.Sprintf("TXN%06d%03d", now.Unix()%1000000, n.Int64()), nil
}

// FeeReference returns the derived reference for the fee record paired with
// the given transfer reference.
func FeeReference(reference string) string {
	return FeeReferencePrefix + reference
}
