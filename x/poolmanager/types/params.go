package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Params are the module-wide settings.
type Params struct {
	FlashLoanEnabled bool           `json:"flash_loan_enabled"`
	FlashLoanFee     math.LegacyDec `json:"flash_loan_fee"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		FlashLoanEnabled: true,
		FlashLoanFee:     math.LegacyNewDecWithPrec(1, 3), // 0.1%
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.FlashLoanFee.IsNil() || p.FlashLoanFee.IsNegative() || p.FlashLoanFee.GTE(math.LegacyOneDec()) {
		return errorsmod.Wrapf(ErrInvalidParams, "flash loan fee %v must be within [0, 1)", p.FlashLoanFee)
	}
	return nil
}
