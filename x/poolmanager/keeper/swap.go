package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/liquidityhub/x/poolmanager/amm"
	"github.com/paw-chain/liquidityhub/x/poolmanager/guard"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// Swap prices the offer, checks the caller's spread bounds and commits the new reserves.
// Nothing is written unless every step succeeds.
func (k Keeper) Swap(goCtx context.Context, msg types.MsgSwap) (*types.SwapResult, error) {
	ctx, span := k.startSpan(goCtx, "poolmanager.Swap")
	defer span.End()
	span.SetAttributes(
		attribute.String("pool_id", msg.PoolIdentifier),
		attribute.String("offer_asset", msg.OfferAsset.String()),
	)

	result, err := k.swap(ctx, msg)
	k.metrics.SwapsTotal.WithLabelValues(msg.PoolIdentifier, msg.OfferAsset.Denom, statusLabel(err)).Inc()
	if err != nil {
		k.recordFailure(ctx, span, msg.PoolIdentifier, "swap", err)
		return nil, err
	}
	return result, nil
}

func (k Keeper) swap(ctx sdk.Context, msg types.MsgSwap) (*types.SwapResult, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := k.assertPoolUnlocked(ctx, msg.PoolIdentifier); err != nil {
		return nil, err
	}
	pool, err := k.pools.GetPool(ctx, msg.PoolIdentifier)
	if err != nil {
		return nil, err
	}
	offerIdx, askIdx, err := pool.OfferAsk(msg.OfferAsset.Denom)
	if err != nil {
		return nil, err
	}
	offerReserve, askReserve := pool.Reserves[offerIdx], pool.Reserves[askIdx]

	comp, err := amm.ComputeSwap(offerReserve.Amount, askReserve.Amount, msg.OfferAsset.Amount, pool.Fees, amm.CurveOf(pool, offerIdx))
	if err != nil {
		return nil, err
	}
	if !comp.ReturnAmount.IsPositive() {
		return nil, errorsmod.Wrapf(types.ErrZeroReturn, "offer %s against pool %s", msg.OfferAsset, pool.Identifier)
	}

	if err := guard.AssertMaxSpread(
		msg.BeliefPrice, msg.MaxSpread,
		msg.OfferAsset.Amount, comp.ReturnAmount, comp.SpreadAmount,
		offerReserve.Decimals, askReserve.Decimals,
	); err != nil {
		return nil, err
	}

	updated, err := applySwap(pool, offerIdx, msg.OfferAsset.Amount, comp)
	if err != nil {
		return nil, err
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pools.SetPool(cacheCtx, updated); err != nil {
		return nil, err
	}

	askDenom := askReserve.Denom
	result := &types.SwapResult{
		ReturnAsset:      sdk.NewCoin(askDenom, comp.ReturnAmount),
		SwapFeeAsset:     sdk.NewCoin(askDenom, comp.SwapFeeAmount),
		ProtocolFeeAsset: sdk.NewCoin(askDenom, comp.ProtocolFeeAmount),
		BurnFeeAsset:     sdk.NewCoin(askDenom, comp.BurnFeeAmount),
		SpreadAmount:     comp.SpreadAmount,
		Pool:             updated,
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolIdentifier, pool.Identifier),
			sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
			sdk.NewAttribute(types.AttributeKeyOfferAsset, msg.OfferAsset.String()),
			sdk.NewAttribute(types.AttributeKeyReturnAsset, result.ReturnAsset.String()),
			sdk.NewAttribute(types.AttributeKeySpreadAmount, comp.SpreadAmount.String()),
			sdk.NewAttribute(types.AttributeKeySwapFee, result.SwapFeeAsset.String()),
			sdk.NewAttribute(types.AttributeKeyProtocolFee, result.ProtocolFeeAsset.String()),
			sdk.NewAttribute(types.AttributeKeyBurnFee, result.BurnFeeAsset.String()),
		),
	)
	write()

	k.metrics.SwapVolume.WithLabelValues(pool.Identifier, msg.OfferAsset.Denom).Add(toFloat(msg.OfferAsset.Amount))
	k.metrics.SwapFeesCollected.WithLabelValues(pool.Identifier, askDenom, "swap").Add(toFloat(comp.SwapFeeAmount))
	k.metrics.SwapFeesCollected.WithLabelValues(pool.Identifier, askDenom, "protocol").Add(toFloat(comp.ProtocolFeeAmount))
	k.metrics.SwapFeesCollected.WithLabelValues(pool.Identifier, askDenom, "burn").Add(toFloat(comp.BurnFeeAmount))
	if beforeSpread := comp.ReturnAmount.Add(comp.SpreadAmount); beforeSpread.IsPositive() {
		ratio := math.LegacyNewDecFromInt(comp.SpreadAmount).QuoInt(beforeSpread)
		if f, err := ratio.Float64(); err == nil {
			k.metrics.SwapSpread.Observe(f)
		}
	}
	k.recordPoolGauges(ctx, updated)

	k.Logger(ctx).Info("swap executed",
		"pool_id", pool.Identifier,
		"offer", msg.OfferAsset.String(),
		"return", result.ReturnAsset.String(),
		"spread", comp.SpreadAmount.String(),
	)
	return result, nil
}

// applySwap moves the offer into the pool and the return plus exiting fees out of it.
// The swap fee is not removed, so it accrues to share holders.
func applySwap(pool types.Pool, offerIdx int, offerAmount math.Int, comp types.SwapComputation) (types.Pool, error) {
	updated := pool
	askIdx := 1 - offerIdx

	newOffer, err := pool.Reserves[offerIdx].Amount.SafeAdd(offerAmount)
	if err != nil {
		return types.Pool{}, errorsmod.Wrap(types.ErrOverflow, err.Error())
	}
	newAsk, err := amm.SafeSub(pool.Reserves[askIdx].Amount, comp.AskOutflow())
	if err != nil {
		return types.Pool{}, err
	}
	updated.Reserves[offerIdx].Amount = newOffer
	updated.Reserves[askIdx].Amount = newAsk

	if err := types.ValidateWidth("offer reserve", newOffer); err != nil {
		return types.Pool{}, err
	}
	if err := amm.AssertInvariantGrowth(pool, updated); err != nil {
		return types.Pool{}, err
	}
	return updated, nil
}

// SimulateSwap prices an offer without touching state.
func (k Keeper) SimulateSwap(ctx context.Context, poolID string, offer sdk.Coin) (types.SwapComputation, error) {
	pool, err := k.pools.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapComputation{}, err
	}
	offerIdx, askIdx, err := pool.OfferAsk(offer.Denom)
	if err != nil {
		return types.SwapComputation{}, err
	}
	return amm.ComputeSwap(pool.Reserves[offerIdx].Amount, pool.Reserves[askIdx].Amount, offer.Amount, pool.Fees, amm.CurveOf(pool, offerIdx))
}

// ReverseSimulateSwap prices the offer needed to receive ask, without touching state.
func (k Keeper) ReverseSimulateSwap(ctx context.Context, poolID string, ask sdk.Coin) (types.OfferComputation, error) {
	pool, err := k.pools.GetPool(ctx, poolID)
	if err != nil {
		return types.OfferComputation{}, err
	}
	askIdx, ok := pool.ReserveIndex(ask.Denom)
	if !ok {
		return types.OfferComputation{}, errorsmod.Wrapf(types.ErrAssetMismatch, "%s is not traded by pool %s", ask.Denom, poolID)
	}
	offerIdx := 1 - askIdx
	return amm.ComputeOfferAmount(pool.Reserves[offerIdx].Amount, pool.Reserves[askIdx].Amount, ask.Amount, pool.Fees, amm.CurveOf(pool, offerIdx))
}
