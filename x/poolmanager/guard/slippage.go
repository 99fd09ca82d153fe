package guard

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// AssertSlippageTolerance rejects a deposit whose asset ratio strays from the pool ratio by more
// than the tolerance in either direction. Both pools must be non-empty.
func AssertSlippageTolerance(tolerance *math.LegacyDec, deposits, pools [2]math.Int) error {
	if tolerance == nil {
		return nil
	}
	if tolerance.IsNil() || tolerance.IsNegative() || tolerance.GT(math.LegacyOneDec()) {
		return errorsmod.Wrapf(types.ErrInvalidSlippageTolerance, "%v", tolerance)
	}
	for i := range deposits {
		if !deposits[i].IsPositive() {
			return errorsmod.Wrap(types.ErrZeroAmount, "both deposits must be positive")
		}
		if !pools[i].IsPositive() {
			return errorsmod.Wrap(types.ErrEmptyPool, "slippage is undefined against an empty pool")
		}
	}

	oneMinusTolerance := math.LegacyOneDec().Sub(*tolerance)
	for _, pair := range [][2]int{{0, 1}, {1, 0}} {
		a, b := pair[0], pair[1]
		// d_a/d_b * (1 - t) > p_a/p_b, cross-multiplied on the raw 18-decimal representation
		lhs := new(big.Int).Mul(deposits[a].BigInt(), pools[b].BigInt())
		lhs.Mul(lhs, oneMinusTolerance.BigInt())
		rhs := new(big.Int).Mul(pools[a].BigInt(), deposits[b].BigInt())
		rhs.Mul(rhs, math.LegacyOneDec().BigInt())
		if lhs.Cmp(rhs) > 0 {
			observed := math.LegacyNewDecFromInt(deposits[a]).QuoInt(deposits[b]).Mul(oneMinusTolerance)
			limit := math.LegacyNewDecFromInt(pools[a]).QuoInt(pools[b])
			return types.NewGuardViolation(types.ErrMaxSlippageAssertion, observed, limit)
		}
	}
	return nil
}
