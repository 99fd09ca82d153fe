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

// ProvideLiquidity deposits both assets and mints shares to the receiver.
// The full deposit enters the reserves; any part not priced into shares is a donation.
func (k Keeper) ProvideLiquidity(goCtx context.Context, msg types.MsgProvideLiquidity) (*types.LiquidityResult, error) {
	ctx, span := k.startSpan(goCtx, "poolmanager.ProvideLiquidity")
	defer span.End()
	span.SetAttributes(attribute.String("pool_id", msg.PoolIdentifier))

	result, err := k.provideLiquidity(ctx, msg)
	k.metrics.LiquidityOps.WithLabelValues(msg.PoolIdentifier, "provide", statusLabel(err)).Inc()
	if err != nil {
		k.recordFailure(ctx, span, msg.PoolIdentifier, "provide_liquidity", err)
		return nil, err
	}
	return result, nil
}

func (k Keeper) provideLiquidity(ctx sdk.Context, msg types.MsgProvideLiquidity) (*types.LiquidityResult, error) {
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
	deposits, err := orderDeposits(pool, msg.Assets)
	if err != nil {
		return nil, err
	}
	totalShares, err := k.shares.GetTotalShares(ctx, pool.Identifier)
	if err != nil {
		return nil, err
	}

	// a first deposit sets the ratio, so there is nothing to slip against
	if totalShares.IsPositive() {
		if err := guard.AssertSlippageTolerance(msg.SlippageTolerance, deposits, pool.Amounts()); err != nil {
			return nil, err
		}
	}

	comp, err := amm.ComputeProvideLiquidity(pool.PoolType, pool.Amounts(), pool.Decimals(), totalShares, deposits)
	if err != nil {
		return nil, err
	}

	updated := pool
	for i := range updated.Reserves {
		updated.Reserves[i].Amount = updated.Reserves[i].Amount.Add(deposits[i])
	}

	receiver := msg.ShareReceiver()
	cacheCtx, write := ctx.CacheContext()
	if err := k.pools.SetPool(cacheCtx, updated); err != nil {
		return nil, err
	}
	if comp.LockedShares.IsPositive() {
		if err := k.shares.MintShares(cacheCtx, pool.Identifier, types.LockedLiquidityHolder, comp.LockedShares); err != nil {
			return nil, err
		}
	}
	if err := k.shares.MintShares(cacheCtx, pool.Identifier, receiver, comp.MintedShares); err != nil {
		return nil, err
	}

	result := &types.LiquidityResult{
		Receiver:     receiver,
		MintedShares: comp.MintedShares,
		LockedShares: comp.LockedShares,
		Pool:         updated,
	}
	denoms := pool.Denoms()
	for i := range denoms {
		result.AcceptedAssets[i] = sdk.NewCoin(denoms[i], comp.AcceptedAmounts[i])
		result.DonatedAssets[i] = sdk.NewCoin(denoms[i], deposits[i].Sub(comp.AcceptedAmounts[i]))
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProvideLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolIdentifier, pool.Identifier),
			sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
			sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
			sdk.NewAttribute(types.AttributeKeyAssets, sdk.NewCoins(msg.Assets[0], msg.Assets[1]).String()),
			sdk.NewAttribute(types.AttributeKeyShares, comp.MintedShares.String()),
			sdk.NewAttribute(types.AttributeKeyLockedShares, comp.LockedShares.String()),
		),
	)
	write()

	for _, donated := range result.DonatedAssets {
		if donated.IsPositive() {
			k.metrics.DonatedAssets.WithLabelValues(pool.Identifier, donated.Denom).Add(toFloat(donated.Amount))
		}
	}
	k.recordPoolGauges(ctx, updated)
	k.Logger(ctx).Info("liquidity provided",
		"pool_id", pool.Identifier,
		"receiver", receiver,
		"minted", comp.MintedShares.String(),
		"locked", comp.LockedShares.String(),
	)
	return result, nil
}

// WithdrawLiquidity burns shares for the proportional part of both reserves.
func (k Keeper) WithdrawLiquidity(goCtx context.Context, msg types.MsgWithdrawLiquidity) (*types.WithdrawResult, error) {
	ctx, span := k.startSpan(goCtx, "poolmanager.WithdrawLiquidity")
	defer span.End()
	span.SetAttributes(attribute.String("pool_id", msg.PoolIdentifier))

	result, err := k.withdrawLiquidity(ctx, msg)
	k.metrics.LiquidityOps.WithLabelValues(msg.PoolIdentifier, "withdraw", statusLabel(err)).Inc()
	if err != nil {
		k.recordFailure(ctx, span, msg.PoolIdentifier, "withdraw_liquidity", err)
		return nil, err
	}
	return result, nil
}

func (k Keeper) withdrawLiquidity(ctx sdk.Context, msg types.MsgWithdrawLiquidity) (*types.WithdrawResult, error) {
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
	balance, err := k.shares.GetShares(ctx, pool.Identifier, msg.Sender)
	if err != nil {
		return nil, err
	}
	if balance.LT(msg.Shares) {
		return nil, errorsmod.Wrapf(types.ErrInsufficientShares, "%s holds %s, withdrawing %s", msg.Sender, balance, msg.Shares)
	}
	totalShares, err := k.shares.GetTotalShares(ctx, pool.Identifier)
	if err != nil {
		return nil, err
	}

	amounts, err := amm.ComputeWithdrawLiquidity(pool.Amounts(), totalShares, msg.Shares)
	if err != nil {
		return nil, err
	}

	updated := pool
	for i := range updated.Reserves {
		remaining, err := amm.SafeSub(updated.Reserves[i].Amount, amounts[i])
		if err != nil {
			return nil, err
		}
		updated.Reserves[i].Amount = remaining
	}

	cacheCtx, write := ctx.CacheContext()
	if err := k.pools.SetPool(cacheCtx, updated); err != nil {
		return nil, err
	}
	if err := k.shares.BurnShares(cacheCtx, pool.Identifier, msg.Sender, msg.Shares); err != nil {
		return nil, err
	}

	result := &types.WithdrawResult{BurnedShares: msg.Shares, Pool: updated}
	denoms := pool.Denoms()
	for i := range denoms {
		result.ReturnedAssets[i] = sdk.NewCoin(denoms[i], amounts[i])
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolIdentifier, pool.Identifier),
			sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
			sdk.NewAttribute(types.AttributeKeyShares, msg.Shares.String()),
			sdk.NewAttribute(types.AttributeKeyAssets, sdk.NewCoins(result.ReturnedAssets[0], result.ReturnedAssets[1]).String()),
		),
	)
	write()

	k.recordPoolGauges(ctx, updated)
	k.Logger(ctx).Info("liquidity withdrawn",
		"pool_id", pool.Identifier,
		"sender", msg.Sender,
		"burned", msg.Shares.String(),
	)
	return result, nil
}

// orderDeposits maps the deposited coins onto pool order.
func orderDeposits(pool types.Pool, assets [2]sdk.Coin) ([2]math.Int, error) {
	var deposits [2]math.Int
	for _, asset := range assets {
		idx, ok := pool.ReserveIndex(asset.Denom)
		if !ok {
			return deposits, errorsmod.Wrapf(types.ErrAssetMismatch, "%s is not traded by pool %s", asset.Denom, pool.Identifier)
		}
		deposits[idx] = asset.Amount
	}
	return deposits, nil
}
