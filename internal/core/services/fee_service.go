package services

import (
	"github.com/novatrust/funds_transfer_app/internal/core/domain"
	portssvc "github.com/novatrust/funds_transfer_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// feeService resolves transfer fees from a static schedule.
type feeService struct {
	schedule domain.FeeSchedule
}

// NewFeeService creates a fee resolver over the given schedule.
func NewFeeService(schedule domain.FeeSchedule) portssvc.FeeResolver {
	return &feeService{schedule: schedule}
}

var _ portssvc.FeeResolver = (*feeService)(nil)

// ResolveFee returns the fixed fee for the transfer type. Unrecognized types
// resolve to zero; see the fee schedule for why the default is permissive.
func (s *feeService) ResolveFee(transferType domain.TransferType) decimal.Decimal {
	return s.schedule.FeeFor(transferType)
}
