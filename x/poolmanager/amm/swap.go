package amm

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// Curve carries what the pricing functions need beyond the two reserves.
type Curve struct {
	PoolType      types.PoolType
	Amplification uint64
	OfferDecimals uint32
	AskDecimals   uint32
}

// CurveOf returns the curve of a pool seen from its offer side.
func CurveOf(pool types.Pool, offerIdx int) Curve {
	return Curve{
		PoolType:      pool.PoolType,
		Amplification: pool.Amplification,
		OfferDecimals: pool.Reserves[offerIdx].Decimals,
		AskDecimals:   pool.Reserves[1-offerIdx].Decimals,
	}
}

// ComputeSwap prices offerAmount of the offer asset against the pool.
func ComputeSwap(offerPool, askPool, offerAmount math.Int, fees types.PoolFees, curve Curve) (types.SwapComputation, error) {
	if err := narrow(
		namedAmount{"offer pool", offerPool}, namedAmount{"ask pool", askPool}, namedAmount{"offer amount", offerAmount},
	); err != nil {
		return types.SwapComputation{}, err
	}
	if offerPool.IsZero() || askPool.IsZero() {
		return types.SwapComputation{}, errorsmod.Wrap(types.ErrEmptyPool, "division by zero pricing against an empty reserve")
	}

	var (
		rawReturn, spread math.Int
		err               error
	)
	switch curve.PoolType {
	case types.PoolTypeConstantProduct:
		rawReturn, spread, err = constantProductReturn(offerPool, askPool, offerAmount)
	case types.PoolTypeStableSwap:
		rawReturn, spread, err = stableSwapReturn(offerPool, askPool, offerAmount, curve)
	default:
		err = errorsmod.Wrapf(types.ErrInvalidPoolType, "%q", string(curve.PoolType))
	}
	if err != nil {
		return types.SwapComputation{}, err
	}

	swapFee := fees.SwapFee.Compute(rawReturn)
	protocolFee := fees.ProtocolFee.Compute(rawReturn)
	burnFee := fees.BurnFee.Compute(rawReturn)
	returnAmount := rawReturn.Sub(swapFee).Sub(protocolFee).Sub(burnFee)

	comp := types.SwapComputation{
		ReturnAmount:      returnAmount,
		SpreadAmount:      spread,
		SwapFeeAmount:     swapFee,
		ProtocolFeeAmount: protocolFee,
		BurnFeeAmount:     burnFee,
	}
	if err := narrow(
		namedAmount{"return amount", comp.ReturnAmount},
		namedAmount{"spread amount", comp.SpreadAmount},
		namedAmount{"swap fee amount", comp.SwapFeeAmount},
		namedAmount{"protocol fee amount", comp.ProtocolFeeAmount},
		namedAmount{"burn fee amount", comp.BurnFeeAmount},
	); err != nil {
		return types.SwapComputation{}, err
	}
	return comp, nil
}

// ComputeOfferAmount prices how much of the offer asset yields askAmount after fees.
func ComputeOfferAmount(offerPool, askPool, askAmount math.Int, fees types.PoolFees, curve Curve) (types.OfferComputation, error) {
	if err := narrow(
		namedAmount{"offer pool", offerPool}, namedAmount{"ask pool", askPool}, namedAmount{"ask amount", askAmount},
	); err != nil {
		return types.OfferComputation{}, err
	}
	if offerPool.IsZero() || askPool.IsZero() {
		return types.OfferComputation{}, errorsmod.Wrap(types.ErrEmptyPool, "division by zero pricing against an empty reserve")
	}

	oneMinusFee := math.LegacyOneDec().Sub(fees.Total())
	if !oneMinusFee.IsPositive() {
		return types.OfferComputation{}, errorsmod.Wrapf(types.ErrInvalidFees, "total fee share %s leaves nothing to return", fees.Total())
	}
	beforeFee := math.LegacyNewDecFromInt(askAmount).QuoTruncate(oneMinusFee).TruncateInt()
	if beforeFee.GTE(askPool) {
		return types.OfferComputation{}, errorsmod.Wrapf(types.ErrInsufficientLiquidity,
			"ask of %s before fees needs more than the %s in the pool", beforeFee, askPool)
	}

	var (
		offerAmount, spread math.Int
		err                 error
	)
	switch curve.PoolType {
	case types.PoolTypeConstantProduct:
		offerAmount, spread, err = constantProductOffer(offerPool, askPool, beforeFee)
	case types.PoolTypeStableSwap:
		offerAmount, spread, err = stableSwapOffer(offerPool, askPool, beforeFee, curve)
	default:
		err = errorsmod.Wrapf(types.ErrInvalidPoolType, "%q", string(curve.PoolType))
	}
	if err != nil {
		return types.OfferComputation{}, err
	}

	comp := types.OfferComputation{
		OfferAmount:       offerAmount,
		SpreadAmount:      spread,
		SwapFeeAmount:     fees.SwapFee.Compute(beforeFee),
		ProtocolFeeAmount: fees.ProtocolFee.Compute(beforeFee),
		BurnFeeAmount:     fees.BurnFee.Compute(beforeFee),
	}
	if err := narrow(
		namedAmount{"offer amount", comp.OfferAmount},
		namedAmount{"spread amount", comp.SpreadAmount},
		namedAmount{"swap fee amount", comp.SwapFeeAmount},
		namedAmount{"protocol fee amount", comp.ProtocolFeeAmount},
		namedAmount{"burn fee amount", comp.BurnFeeAmount},
	); err != nil {
		return types.OfferComputation{}, err
	}
	return comp, nil
}

// constantProductReturn returns the pre-fee return and the spread lost to price impact.
func constantProductReturn(offerPool, askPool, offerAmount math.Int) (math.Int, math.Int, error) {
	denominator, err := offerPool.SafeAdd(offerAmount)
	if err != nil {
		return math.Int{}, math.Int{}, errorsmod.Wrap(types.ErrOverflow, err.Error())
	}
	rawReturn, err := SafeMulDiv(askPool, offerAmount, denominator)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	// offer valued at the pre-trade rate ask_pool / offer_pool
	beforeSpread, err := SafeMulDiv(offerAmount, askPool, offerPool)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return rawReturn, beforeSpread.Sub(rawReturn), nil
}

// constantProductOffer solves the invariant for the offer that removes beforeFee from the ask side.
func constantProductOffer(offerPool, askPool, beforeFee math.Int) (math.Int, math.Int, error) {
	newOfferPool, err := SafeMulDiv(offerPool, askPool, askPool.Sub(beforeFee))
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	offerAmount := newOfferPool.Sub(offerPool)

	beforeSpread, err := SafeMulDiv(offerAmount, askPool, offerPool)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	spread := math.MaxInt(beforeSpread.Sub(beforeFee), math.ZeroInt())
	return offerAmount, spread, nil
}
