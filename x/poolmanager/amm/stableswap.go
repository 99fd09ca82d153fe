package amm

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// Two-coin amplified invariant:
//
//	Ann * (x + y) + D = Ann * D + D^3 / (4xy),  Ann = A * n
//
// Both solvers use Newton iteration on big.Int because D^3 on
// decimal-normalized 128-bit reserves exceeds 256 bits.

const (
	stableCoins         = 2
	stableMaxIterations = 256
)

var (
	bigOne   = big.NewInt(1)
	bigCoins = big.NewInt(stableCoins)
)

// ComputeStableSwapD solves the invariant for D given both normalized reserves.
func ComputeStableSwapD(amp uint64, x, y *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(x, y)
	if sum.Sign() == 0 {
		return new(big.Int), nil
	}
	if x.Sign() <= 0 || y.Sign() <= 0 {
		return nil, errorsmod.Wrap(types.ErrEmptyPool, "stableswap reserves must be positive")
	}

	ann := new(big.Int).Mul(new(big.Int).SetUint64(amp), bigCoins)
	annMinusOne := new(big.Int).Sub(ann, bigOne)
	d := new(big.Int).Set(sum)
	for i := 0; i < stableMaxIterations; i++ {
		// dP = D^3 / (n^n * x * y)
		dP := new(big.Int).Mul(d, d)
		dP.Quo(dP, new(big.Int).Mul(x, bigCoins))
		dP.Mul(dP, d)
		dP.Quo(dP, new(big.Int).Mul(y, bigCoins))

		numerator := new(big.Int).Mul(ann, sum)
		numerator.Add(numerator, new(big.Int).Mul(dP, bigCoins))
		numerator.Mul(numerator, d)

		denominator := new(big.Int).Mul(annMinusOne, d)
		denominator.Add(denominator, new(big.Int).Mul(dP, big.NewInt(stableCoins+1)))

		prev := d
		d = numerator.Quo(numerator, denominator)
		if withinOne(d, prev) {
			return d, nil
		}
	}
	return nil, errorsmod.Wrapf(types.ErrNoConvergence, "D after %d iterations", stableMaxIterations)
}

// ComputeStableSwapY solves the invariant for the other reserve once one side is fixed at x.
func ComputeStableSwapY(amp uint64, x, d *big.Int) (*big.Int, error) {
	if x.Sign() <= 0 {
		return nil, errorsmod.Wrap(types.ErrInsufficientLiquidity, "stableswap reserve must stay positive")
	}
	ann := new(big.Int).Mul(new(big.Int).SetUint64(amp), bigCoins)

	// c = D^3 / (n^n * x * Ann)
	c := new(big.Int).Mul(d, d)
	c.Quo(c, new(big.Int).Mul(x, bigCoins))
	c.Mul(c, d)
	c.Quo(c, new(big.Int).Mul(ann, bigCoins))

	// b = x + D / Ann
	b := new(big.Int).Quo(d, ann)
	b.Add(b, x)

	y := new(big.Int).Set(d)
	for i := 0; i < stableMaxIterations; i++ {
		numerator := new(big.Int).Mul(y, y)
		numerator.Add(numerator, c)

		denominator := new(big.Int).Mul(y, bigCoins)
		denominator.Add(denominator, b)
		denominator.Sub(denominator, d)
		if denominator.Sign() <= 0 {
			return nil, errorsmod.Wrap(types.ErrNoConvergence, "stableswap Y denominator vanished")
		}

		prev := y
		y = numerator.Quo(numerator, denominator)
		if withinOne(y, prev) {
			return y, nil
		}
	}
	return nil, errorsmod.Wrapf(types.ErrNoConvergence, "Y after %d iterations", stableMaxIterations)
}

func withinOne(a, b *big.Int) bool {
	diff := new(big.Int).Sub(a, b)
	return diff.CmpAbs(bigOne) <= 0
}

// stableSwapReturn prices an offer on the amplified curve, measuring spread against a 1:1 peg.
func stableSwapReturn(offerPool, askPool, offerAmount math.Int, curve Curve) (math.Int, math.Int, error) {
	offerScale, askScale := decimalScales(curve.OfferDecimals, curve.AskDecimals)
	x := new(big.Int).Mul(offerPool.BigInt(), offerScale)
	y := new(big.Int).Mul(askPool.BigInt(), askScale)
	dx := new(big.Int).Mul(offerAmount.BigInt(), offerScale)

	d, err := ComputeStableSwapD(curve.Amplification, x, y)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	newY, err := ComputeStableSwapY(curve.Amplification, new(big.Int).Add(x, dx), d)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	// one unit is kept back so rounding in the solver never favors the trader
	raw := new(big.Int).Sub(y, newY)
	raw.Sub(raw, bigOne)
	if raw.Sign() < 0 {
		raw.SetInt64(0)
	}
	raw.Quo(raw, askScale)

	pegged := new(big.Int).Quo(dx, askScale)
	spread := new(big.Int).Sub(pegged, raw)
	if spread.Sign() < 0 {
		spread.SetInt64(0)
	}
	return math.NewIntFromBigInt(raw), math.NewIntFromBigInt(spread), nil
}

// stableSwapOffer solves the amplified curve for the offer that removes beforeFee from the ask side.
func stableSwapOffer(offerPool, askPool, beforeFee math.Int, curve Curve) (math.Int, math.Int, error) {
	offerScale, askScale := decimalScales(curve.OfferDecimals, curve.AskDecimals)
	x := new(big.Int).Mul(offerPool.BigInt(), offerScale)
	y := new(big.Int).Mul(askPool.BigInt(), askScale)

	d, err := ComputeStableSwapD(curve.Amplification, x, y)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	newY := new(big.Int).Sub(y, new(big.Int).Mul(beforeFee.BigInt(), askScale))
	newX, err := ComputeStableSwapY(curve.Amplification, newY, d)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	offerScaled := new(big.Int).Sub(newX, x)
	offerScaled.Add(offerScaled, bigOne)
	if offerScaled.Sign() < 0 {
		offerScaled.SetInt64(0)
	}
	// round up so the pool is never short
	offer, rem := new(big.Int).QuoRem(offerScaled, offerScale, new(big.Int))
	if rem.Sign() > 0 {
		offer.Add(offer, bigOne)
	}
	if offer.BitLen() > types.MaxReserveBits {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(types.ErrOverflow, "offer amount exceeds %d bits", types.MaxReserveBits)
	}

	pegged := new(big.Int).Mul(offer, offerScale)
	pegged.Quo(pegged, askScale)
	spread := new(big.Int).Sub(pegged, beforeFee.BigInt())
	if spread.Sign() < 0 {
		spread.SetInt64(0)
	}
	return math.NewIntFromBigInt(offer), math.NewIntFromBigInt(spread), nil
}
