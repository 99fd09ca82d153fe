package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// CreatePool registers an empty pool.
func (k Keeper) CreatePool(ctx context.Context, msg types.MsgCreatePool) (types.Pool, error) {
	if err := msg.ValidateBasic(); err != nil {
		return types.Pool{}, err
	}
	pool := msg.Pool()
	if k.pools.HasPool(ctx, pool.Identifier) {
		return types.Pool{}, errorsmod.Wrapf(types.ErrPoolAlreadyExists, "pool %s", pool.Identifier)
	}
	if err := k.pools.SetPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreatePool,
			sdk.NewAttribute(types.AttributeKeyPoolIdentifier, pool.Identifier),
			sdk.NewAttribute(types.AttributeKeySender, msg.Creator),
			sdk.NewAttribute(types.AttributeKeyPoolType, string(pool.PoolType)),
		),
	)
	k.metrics.PoolsCreated.Inc()
	k.Logger(ctx).Info("pool created", "pool_id", pool.Identifier, "type", pool.PoolType, "creator", msg.Creator)
	return pool, nil
}

// GetPool returns a pool by identifier
func (k Keeper) GetPool(ctx context.Context, poolID string) (types.Pool, error) {
	return k.pools.GetPool(ctx, poolID)
}

// GetAllPools returns every pool in identifier order
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.pools.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// GetShares returns a holder's share balance in a pool
func (k Keeper) GetShares(ctx context.Context, poolID, holder string) (sdk.Coin, error) {
	if _, err := k.pools.GetPool(ctx, poolID); err != nil {
		return sdk.Coin{}, err
	}
	shares, err := k.shares.GetShares(ctx, poolID, holder)
	if err != nil {
		return sdk.Coin{}, err
	}
	return sdk.NewCoin(ShareDenom(poolID), shares), nil
}

// GetTotalShares returns the outstanding shares of a pool
func (k Keeper) GetTotalShares(ctx context.Context, poolID string) (sdk.Coin, error) {
	if _, err := k.pools.GetPool(ctx, poolID); err != nil {
		return sdk.Coin{}, err
	}
	total, err := k.shares.GetTotalShares(ctx, poolID)
	if err != nil {
		return sdk.Coin{}, err
	}
	return sdk.NewCoin(ShareDenom(poolID), total), nil
}

// ShareDenom names the share token of a pool.
func ShareDenom(poolID string) string {
	return types.ModuleName + "/" + poolID + "/shares"
}

// UpdatePoolFees replaces the fees of a pool. Only the authority may do so.
func (k Keeper) UpdatePoolFees(ctx context.Context, msg types.MsgUpdatePoolFees) (types.Pool, error) {
	if err := msg.ValidateBasic(); err != nil {
		return types.Pool{}, err
	}
	if msg.Authority != k.authority {
		return types.Pool{}, errorsmod.Wrapf(types.ErrUnauthorized, "expected %s, got %s", k.authority, msg.Authority)
	}
	if err := k.assertPoolUnlocked(ctx, msg.PoolIdentifier); err != nil {
		return types.Pool{}, err
	}
	pool, err := k.pools.GetPool(ctx, msg.PoolIdentifier)
	if err != nil {
		return types.Pool{}, err
	}
	pool.Fees = msg.Fees
	if err := k.pools.SetPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUpdatePoolFees,
			sdk.NewAttribute(types.AttributeKeyPoolIdentifier, pool.Identifier),
			sdk.NewAttribute(types.AttributeKeySwapFee, pool.Fees.SwapFee.Share.String()),
			sdk.NewAttribute(types.AttributeKeyProtocolFee, pool.Fees.ProtocolFee.Share.String()),
			sdk.NewAttribute(types.AttributeKeyBurnFee, pool.Fees.BurnFee.Share.String()),
		),
	)
	k.Logger(ctx).Info("pool fees updated", "pool_id", pool.Identifier, "total_fee", pool.Fees.Total().String())
	return pool, nil
}

// RecordMetrics publishes reserve and supply gauges for every pool.
func (k Keeper) RecordMetrics(ctx context.Context) error {
	return k.pools.IteratePools(ctx, func(pool types.Pool) bool {
		k.recordPoolGauges(ctx, pool)
		return false
	})
}

// recordPoolGauges refreshes reserve and supply gauges after a committed mutation.
func (k Keeper) recordPoolGauges(ctx context.Context, pool types.Pool) {
	for _, r := range pool.Reserves {
		k.metrics.PoolReserves.WithLabelValues(pool.Identifier, r.Denom).Set(toFloat(r.Amount))
	}
	if total, err := k.shares.GetTotalShares(ctx, pool.Identifier); err == nil {
		k.metrics.ShareSupply.WithLabelValues(pool.Identifier).Set(toFloat(total))
	}
}
