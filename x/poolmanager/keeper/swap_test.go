package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/liquidityhub/testutil/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func TestSwap(t *testing.T) {
	k, ctx, _, pool := setupSeededPool(t)

	res, err := k.Swap(ctx, types.MsgSwap{
		Sender:         bob,
		PoolIdentifier: pool.Identifier,
		OfferAsset:     sdk.NewInt64Coin("uluna", 10_000),
	})
	require.NoError(t, err)
	require.Equal(t, sdk.NewInt64Coin("uusd", 9862), res.ReturnAsset)
	require.Equal(t, math.NewInt(100), res.SpreadAmount)
	require.Equal(t, math.NewInt(29), res.SwapFeeAsset.Amount)
	require.Equal(t, math.NewInt(9), res.ProtocolFeeAsset.Amount)
	require.True(t, res.BurnFeeAsset.Amount.IsZero())
	require.True(t, hasEvent(ctx, types.EventTypeSwap))

	stored, err := k.GetPool(ctx, pool.Identifier)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_010_000), stored.Reserves[0].Amount)
	// the swap fee stays in the pool, the return and protocol fee leave it
	require.Equal(t, math.NewInt(990_129), stored.Reserves[1].Amount)
}

func TestSwap_MatchesSimulation(t *testing.T) {
	k, ctx, _, pool := setupSeededPool(t)
	offer := sdk.NewInt64Coin("uusd", 55_555)

	sim, err := k.SimulateSwap(ctx, pool.Identifier, offer)
	require.NoError(t, err)

	res, err := k.Swap(ctx, types.MsgSwap{Sender: bob, PoolIdentifier: pool.Identifier, OfferAsset: offer})
	require.NoError(t, err)
	require.Equal(t, "uluna", res.ReturnAsset.Denom)
	require.True(t, sim.ReturnAmount.Equal(res.ReturnAsset.Amount))
	require.True(t, sim.SpreadAmount.Equal(res.SpreadAmount))
}

func TestSwap_SpreadGuard(t *testing.T) {
	k, ctx, storeKey, pool := setupSeededPool(t)
	before := rawPool(ctx, storeKey, pool.Identifier)

	msg := types.MsgSwap{
		Sender:         bob,
		PoolIdentifier: pool.Identifier,
		OfferAsset:     sdk.NewInt64Coin("uluna", 10_000),
		BeliefPrice:    decPtr("1"),
		MaxSpread:      decPtr("0.0137"),
	}
	_, err := k.Swap(ctx, msg)
	require.ErrorIs(t, err, types.ErrMaxSpreadAssertion)
	require.Equal(t, types.CategoryGuard, types.CategoryOf(err))

	var violation *types.GuardViolation
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "0.013800000000000000", violation.Observed.String())
	require.Equal(t, before, rawPool(ctx, storeKey, pool.Identifier))

	msg.MaxSpread = decPtr("0.0138")
	_, err = k.Swap(ctx, msg)
	require.NoError(t, err)
	require.NotEqual(t, before, rawPool(ctx, storeKey, pool.Identifier))
}

func TestSwap_Rejections(t *testing.T) {
	k, ctx, storeKey, pool := setupSeededPool(t)
	before := rawPool(ctx, storeKey, pool.Identifier)

	tests := []struct {
		name string
		msg  types.MsgSwap
		err  error
	}{
		{
			name: "asset not in pool",
			msg:  types.MsgSwap{Sender: bob, PoolIdentifier: pool.Identifier, OfferAsset: sdk.NewInt64Coin("uatom", 10)},
			err:  types.ErrAssetMismatch,
		},
		{
			name: "zero offer",
			msg:  types.MsgSwap{Sender: bob, PoolIdentifier: pool.Identifier, OfferAsset: sdk.NewInt64Coin("uluna", 0)},
			err:  types.ErrZeroAmount,
		},
		{
			name: "unknown pool",
			msg:  types.MsgSwap{Sender: bob, PoolIdentifier: "missing", OfferAsset: sdk.NewInt64Coin("uluna", 10)},
			err:  types.ErrPoolNotFound,
		},
		{
			name: "offer too small to return anything",
			msg:  types.MsgSwap{Sender: bob, PoolIdentifier: pool.Identifier, OfferAsset: sdk.NewInt64Coin("uluna", 1)},
			err:  types.ErrZeroReturn,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.Swap(ctx, tc.msg)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, before, rawPool(ctx, storeKey, pool.Identifier))
		})
	}
}

func TestSwap_EmptyPool(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, "uluna", "uusd")

	_, err := k.Swap(ctx, types.MsgSwap{Sender: bob, PoolIdentifier: pool.Identifier, OfferAsset: sdk.NewInt64Coin("uluna", 100)})
	require.ErrorIs(t, err, types.ErrEmptyPool)
	require.Equal(t, types.CategoryArithmetic, types.CategoryOf(err))
}

func TestReverseSimulateSwap(t *testing.T) {
	k, ctx, _, pool := setupSeededPool(t)

	offer, err := k.ReverseSimulateSwap(ctx, pool.Identifier, sdk.NewInt64Coin("uusd", 9862))
	require.NoError(t, err)
	require.True(t, offer.OfferAmount.IsPositive())

	// paying the quoted offer yields at least the requested amount
	sim, err := k.SimulateSwap(ctx, pool.Identifier, sdk.NewCoin("uluna", offer.OfferAmount))
	require.NoError(t, err)
	require.True(t, sim.ReturnAmount.GTE(math.NewInt(9862)), "got %s", sim.ReturnAmount)

	_, err = k.ReverseSimulateSwap(ctx, pool.Identifier, sdk.NewInt64Coin("uusd", 1_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	_, err = k.ReverseSimulateSwap(ctx, pool.Identifier, sdk.NewInt64Coin("uatom", 1))
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}

func TestSwap_StableSwapPool(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)
	pool, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:       "creator",
		Denoms:        [2]string{"uusdc", "uusdt"},
		Decimals:      [2]uint32{6, 6},
		Fees:          types.DefaultPoolFees(),
		PoolType:      types.PoolTypeStableSwap,
		Amplification: 100,
	})
	require.NoError(t, err)
	keepertest.SeedTestPool(t, k, ctx, pool, alice, math.NewInt(1_000_000_000), math.NewInt(1_000_000_000))

	res, err := k.Swap(ctx, types.MsgSwap{Sender: bob, PoolIdentifier: pool.Identifier, OfferAsset: sdk.NewInt64Coin("uusdc", 1_000_000)})
	require.NoError(t, err)
	// a constant product pool of the same depth returns 995_004 after fees
	require.True(t, res.ReturnAsset.Amount.GT(math.NewInt(995_900)), "got %s", res.ReturnAsset.Amount)
	require.True(t, res.ReturnAsset.Amount.LT(math.NewInt(1_000_000)))
}
