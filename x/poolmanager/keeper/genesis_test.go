package keeper_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/liquidityhub/testutil/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func TestGenesis_RoundTrip(t *testing.T) {
	k, ctx, _, pool := setupSeededPool(t)
	_, err := k.ProvideLiquidity(ctx, deposit(pool, bob, 20_000, 20_000))
	require.NoError(t, err)
	_, err = k.Swap(ctx, types.MsgSwap{Sender: bob, PoolIdentifier: pool.Identifier, OfferAsset: sdk.NewInt64Coin("uusd", 5_000)})
	require.NoError(t, err)
	keepertest.CreateTestPool(t, k, ctx, "uatom", "uosmo")

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Len(t, exported.Pools, 2)
	// alice, bob and the locked holder
	require.Len(t, exported.Shares, 3)

	imported, importedCtx := keepertest.PoolManagerKeeper(t)
	require.NoError(t, imported.InitGenesis(importedCtx, *exported))
	reexported, err := imported.ExportGenesis(importedCtx)
	require.NoError(t, err)

	want, err := json.Marshal(exported)
	require.NoError(t, err)
	got, err := json.Marshal(reexported)
	require.NoError(t, err)
	require.JSONEq(t, string(want), string(got))
}

func TestGenesis_Default(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)

	gs, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Empty(t, gs.Pools)
	require.Empty(t, gs.Shares)
	require.True(t, gs.Params.FlashLoanEnabled)
}

func TestGenesis_RejectsInconsistentState(t *testing.T) {
	pool := types.NewPool("uluna-uusd", "uluna", 6, "uusd", 6, types.DefaultPoolFees(), types.PoolTypeConstantProduct, 0)

	// shares outstanding over an empty pool
	gs := types.GenesisState{
		Params: types.DefaultParams(),
		Pools:  []types.Pool{pool},
		Shares: []types.ShareRecord{{PoolIdentifier: pool.Identifier, Holder: alice, Shares: math.NewInt(10)}},
	}
	k, ctx := keepertest.PoolManagerKeeper(t)
	err := k.InitGenesis(ctx, gs)
	require.ErrorIs(t, err, types.ErrInvalidGenesis)

	gs.Shares = append(gs.Shares, types.ShareRecord{PoolIdentifier: "missing", Holder: alice, Shares: math.NewInt(1)})
	require.ErrorIs(t, gs.Validate(), types.ErrInvalidGenesis)
}
