package domain

import "github.com/shopspring/decimal"

// FeeSchedule maps a transfer type to its fixed fee. The schedule is static;
// it is never mutated at runtime.
type FeeSchedule map[TransferType]decimal.Decimal

// DefaultFeeSchedule is the bank's standard fee table.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		TransferInternal:      decimal.Zero,
		TransferExternal:      decimal.NewFromFloat(3.00),
		TransferWire:          decimal.NewFromFloat(25.00),
		TransferInternational: decimal.NewFromFloat(45.00),
		TransferMobile:        decimal.Zero,
	}
}

// FeeFor resolves the fee for a transfer type. An unrecognized type resolves
// to zero; the permissive default matches the portal's historical behavior.
func (s FeeSchedule) FeeFor(transferType TransferType) decimal.Decimal {
	if fee, ok := s[transferType]; ok {
		return fee
	}
	return decimal.Zero
}
