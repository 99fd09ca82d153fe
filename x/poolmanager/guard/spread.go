package guard

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/liquidityhub/x/poolmanager/amm"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// NormalizeAmounts lifts the lower-precision side so offer and return compare in the same units.
// The return and spread share the ask asset's precision.
func NormalizeAmounts(offer, ret, spread math.Int, offerDecimals, returnDecimals uint32) (math.Int, math.Int, math.Int, error) {
	switch {
	case offerDecimals > returnDecimals:
		factor := math.NewIntFromBigInt(amm.Pow10(offerDecimals - returnDecimals))
		ret = ret.Mul(factor)
		spread = spread.Mul(factor)
	case offerDecimals < returnDecimals:
		factor := math.NewIntFromBigInt(amm.Pow10(returnDecimals - offerDecimals))
		offer = offer.Mul(factor)
	}
	for _, v := range []struct {
		name   string
		amount math.Int
	}{{"normalized offer", offer}, {"normalized return", ret}, {"normalized spread", spread}} {
		if err := types.ValidateWidth(v.name, v.amount); err != nil {
			return math.Int{}, math.Int{}, math.Int{}, err
		}
	}
	return offer, ret, spread, nil
}

// AssertMaxSpread rejects a swap whose realized price impact exceeds the caller's bound.
//
// With a belief price the bound applies to the shortfall against offer / beliefPrice.
// With only maxSpread it applies to spread / (return + spread). Without maxSpread nothing is checked.
func AssertMaxSpread(
	beliefPrice, maxSpread *math.LegacyDec,
	offerAmount, returnAmount, spreadAmount math.Int,
	offerDecimals, returnDecimals uint32,
) error {
	if maxSpread == nil {
		return nil
	}
	if maxSpread.IsNil() || maxSpread.IsNegative() || maxSpread.GT(math.LegacyOneDec()) {
		return errorsmod.Wrapf(types.ErrInvalidMaxSpread, "%v", maxSpread)
	}
	if offerDecimals > types.MaxDecimals || returnDecimals > types.MaxDecimals {
		return errorsmod.Wrapf(types.ErrInvalidDecimals, "%d/%d", offerDecimals, returnDecimals)
	}

	offer, ret, spread, err := NormalizeAmounts(offerAmount, returnAmount, spreadAmount, offerDecimals, returnDecimals)
	if err != nil {
		return err
	}

	if beliefPrice != nil {
		if beliefPrice.IsNil() || !beliefPrice.IsPositive() {
			return errorsmod.Wrapf(types.ErrInvalidBeliefPrice, "%v", beliefPrice)
		}
		expected := math.LegacyNewDecFromInt(offer).Quo(*beliefPrice).TruncateInt()
		if ret.GTE(expected) {
			return nil
		}
		implied := math.LegacyNewDecFromInt(expected.Sub(ret)).QuoInt(expected)
		if implied.GT(*maxSpread) {
			return types.NewGuardViolation(types.ErrMaxSpreadAssertion, implied, *maxSpread)
		}
		return nil
	}

	denominator := ret.Add(spread)
	if denominator.IsZero() {
		return errorsmod.Wrap(types.ErrZeroReturn, "spread ratio is undefined without any return")
	}
	ratio := math.LegacyNewDecFromInt(spread).QuoInt(denominator)
	if ratio.GT(*maxSpread) {
		return types.NewGuardViolation(types.ErrMaxSpreadAssertion, ratio, *maxSpread)
	}
	return nil
}
