package amm

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// SafeMulDiv computes floor(a * b / c) with the product checked against the 256-bit bound.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "division by zero")
	}
	product, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, errorsmod.Wrapf(types.ErrOverflow, "%s * %s: %s", a, b, err)
	}
	return product.Quo(c), nil
}

// SafeMulDivCeil computes ceil(a * b / c).
func SafeMulDivCeil(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "division by zero")
	}
	product, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, errorsmod.Wrapf(types.ErrOverflow, "%s * %s: %s", a, b, err)
	}
	quo := product.Quo(c)
	if !product.Mod(c).IsZero() {
		quo = quo.AddRaw(1)
	}
	return quo, nil
}

// SafeSub subtracts b from a, failing instead of going negative.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, errorsmod.Wrapf(types.ErrInvalidPoolState, "underflow: cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// IntegerSqrt returns floor(sqrt(x)).
func IntegerSqrt(x math.Int) math.Int {
	if !x.IsPositive() {
		return math.ZeroInt()
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

// Pow10 returns 10^exp.
func Pow10(exp uint32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}

type namedAmount struct {
	name   string
	amount math.Int
}

// narrow checks every amount fits the reserve width, in order.
func narrow(amounts ...namedAmount) error {
	for _, a := range amounts {
		if err := types.ValidateWidth(a.name, a.amount); err != nil {
			return err
		}
	}
	return nil
}

// decimalScales returns the factors that lift each side to the larger precision.
func decimalScales(offerDecimals, askDecimals uint32) (offerScale, askScale *big.Int) {
	target := offerDecimals
	if askDecimals > target {
		target = askDecimals
	}
	return Pow10(target - offerDecimals), Pow10(target - askDecimals)
}
