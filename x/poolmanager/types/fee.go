package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Fee is a fraction in [0, 1] taken from a base amount.
type Fee struct {
	Share math.LegacyDec `json:"share"`
}

// NewFee returns a fee with the given share.
func NewFee(share math.LegacyDec) Fee {
	return Fee{Share: share}
}

// ZeroFee returns a fee that never takes anything.
func ZeroFee() Fee {
	return Fee{Share: math.LegacyZeroDec()}
}

// Compute returns floor(share * base).
func (f Fee) Compute(base math.Int) math.Int {
	if f.Share.IsNil() || f.Share.IsZero() || base.IsZero() {
		return math.ZeroInt()
	}
	return f.Share.MulInt(base).TruncateInt()
}

// Validate checks the share lies in [0, 1].
func (f Fee) Validate() error {
	if f.Share.IsNil() {
		return errorsmod.Wrap(ErrInvalidFees, "fee share is nil")
	}
	if f.Share.IsNegative() || f.Share.GT(math.LegacyOneDec()) {
		return errorsmod.Wrapf(ErrInvalidFees, "fee share %s outside [0, 1]", f.Share)
	}
	return nil
}

// PoolFees holds every fee a pool charges on a swap.
type PoolFees struct {
	// SwapFee stays in the pool and accrues to liquidity providers.
	SwapFee Fee `json:"swap_fee"`
	// ProtocolFee leaves the pool toward the protocol.
	ProtocolFee Fee `json:"protocol_fee"`
	// BurnFee leaves the pool and is destroyed.
	BurnFee Fee `json:"burn_fee"`
}

// NewPoolFees builds pool fees from the three shares.
func NewPoolFees(swap, protocol, burn math.LegacyDec) PoolFees {
	return PoolFees{SwapFee: NewFee(swap), ProtocolFee: NewFee(protocol), BurnFee: NewFee(burn)}
}

// DefaultPoolFees returns 0.3% swap fee, 0.1% protocol fee and no burn.
func DefaultPoolFees() PoolFees {
	return NewPoolFees(math.LegacyNewDecWithPrec(3, 3), math.LegacyNewDecWithPrec(1, 3), math.LegacyZeroDec())
}

// Total returns the sum of all fee shares.
func (f PoolFees) Total() math.LegacyDec {
	return f.SwapFee.Share.Add(f.ProtocolFee.Share).Add(f.BurnFee.Share)
}

// Validate checks each fee and that together they stay strictly below one.
func (f PoolFees) Validate() error {
	for _, fee := range []Fee{f.SwapFee, f.ProtocolFee, f.BurnFee} {
		if err := fee.Validate(); err != nil {
			return err
		}
	}
	if total := f.Total(); total.GTE(math.LegacyOneDec()) {
		return errorsmod.Wrapf(ErrInvalidFees, "total fee share %s must be below 1", total)
	}
	return nil
}
