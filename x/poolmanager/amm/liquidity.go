package amm

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// BootstrapShares returns the shares a first deposit is worth before the minimum is locked.
// Constant product pools use the geometric mean; stableswap pools the decimal-normalized sum.
func BootstrapShares(poolType types.PoolType, deposits [2]math.Int, decimals [2]uint32) (math.Int, error) {
	switch poolType {
	case types.PoolTypeConstantProduct:
		product, err := deposits[0].SafeMul(deposits[1])
		if err != nil {
			return math.Int{}, errorsmod.Wrapf(types.ErrOverflow, "initial deposit product: %s", err)
		}
		return IntegerSqrt(product), nil
	case types.PoolTypeStableSwap:
		scale0, scale1 := decimalScales(decimals[0], decimals[1])
		sum := new(big.Int).Mul(deposits[0].BigInt(), scale0)
		sum.Add(sum, new(big.Int).Mul(deposits[1].BigInt(), scale1))
		if sum.BitLen() > types.MaxReserveBits {
			return math.Int{}, errorsmod.Wrapf(types.ErrOverflow, "initial shares exceed %d bits", types.MaxReserveBits)
		}
		return math.NewIntFromBigInt(sum), nil
	default:
		return math.Int{}, errorsmod.Wrapf(types.ErrInvalidPoolType, "%q", string(poolType))
	}
}

// ComputeProvideLiquidity prices a two-sided deposit into shares.
//
// On an empty pool MinimumLiquidityAmount shares are locked and the rest minted.
// Otherwise the asset yielding fewer shares limits the mint; the other asset is
// accepted only for its proportional part and the surplus is left in the pool.
func ComputeProvideLiquidity(
	poolType types.PoolType,
	reserves [2]math.Int,
	decimals [2]uint32,
	totalShares math.Int,
	deposits [2]math.Int,
) (types.LiquidityComputation, error) {
	for _, d := range deposits {
		if err := types.ValidateWidth("deposit", d); err != nil {
			return types.LiquidityComputation{}, err
		}
		if !d.IsPositive() {
			return types.LiquidityComputation{}, errorsmod.Wrap(types.ErrZeroAmount, "both deposits must be positive")
		}
	}

	if totalShares.IsZero() {
		if !reserves[0].IsZero() || !reserves[1].IsZero() {
			return types.LiquidityComputation{}, errorsmod.Wrapf(types.ErrInvalidPoolState,
				"pool without shares holds reserves %s/%s", reserves[0], reserves[1])
		}
		share, err := BootstrapShares(poolType, deposits, decimals)
		if err != nil {
			return types.LiquidityComputation{}, err
		}
		minimum := math.NewInt(types.MinimumLiquidityAmount)
		if share.LTE(minimum) {
			return types.LiquidityComputation{}, errorsmod.Wrapf(types.ErrInvalidInitialLiquidity,
				"initial deposit is worth %s shares, must exceed %s", share, minimum)
		}
		return types.LiquidityComputation{
			AcceptedAmounts: deposits,
			MintedShares:    share.Sub(minimum),
			LockedShares:    minimum,
		}, nil
	}

	if reserves[0].IsZero() || reserves[1].IsZero() {
		return types.LiquidityComputation{}, errorsmod.Wrapf(types.ErrInvalidPoolState,
			"pool with %s shares has an empty reserve", totalShares)
	}

	var candidates [2]math.Int
	for i := range deposits {
		shares, err := SafeMulDiv(deposits[i], totalShares, reserves[i])
		if err != nil {
			return types.LiquidityComputation{}, err
		}
		candidates[i] = shares
	}

	limiting := 0
	if candidates[1].LT(candidates[0]) {
		limiting = 1
	}
	minted := candidates[limiting]
	if minted.IsZero() {
		return types.LiquidityComputation{}, errorsmod.Wrapf(types.ErrZeroSharesMinted,
			"deposit %s/%s against reserves %s/%s", deposits[0], deposits[1], reserves[0], reserves[1])
	}

	var accepted [2]math.Int
	accepted[limiting] = deposits[limiting]
	other := 1 - limiting
	if candidates[other].Equal(minted) {
		accepted[other] = deposits[other]
	} else {
		needed, err := SafeMulDivCeil(minted, reserves[other], totalShares)
		if err != nil {
			return types.LiquidityComputation{}, err
		}
		accepted[other] = math.MinInt(needed, deposits[other])
	}

	return types.LiquidityComputation{
		AcceptedAmounts: accepted,
		MintedShares:    minted,
		LockedShares:    math.ZeroInt(),
	}, nil
}

// ComputeWithdrawLiquidity returns floor(shares * reserve / totalShares) for each reserve.
func ComputeWithdrawLiquidity(reserves [2]math.Int, totalShares, shares math.Int) ([2]math.Int, error) {
	if !totalShares.IsPositive() {
		return [2]math.Int{}, errorsmod.Wrap(types.ErrEmptyPool, "pool has no shares outstanding")
	}
	if !shares.IsPositive() {
		return [2]math.Int{}, errorsmod.Wrap(types.ErrZeroAmount, "shares must be positive")
	}
	if shares.GT(totalShares) {
		return [2]math.Int{}, errorsmod.Wrapf(types.ErrInsufficientShares, "burning %s of %s outstanding", shares, totalShares)
	}

	var amounts [2]math.Int
	for i := range reserves {
		amount, err := SafeMulDiv(shares, reserves[i], totalShares)
		if err != nil {
			return [2]math.Int{}, err
		}
		amounts[i] = amount
	}
	return amounts, nil
}
