package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquidityhub/x/poolmanager/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// TestAuthority is the fee authority of keepers built by this package.
const TestAuthority = "liquidityhub-authority"

// PoolManagerStore mounts a fresh in-memory IAVL store for the module.
func PoolManagerStore(t testing.TB) (*storetypes.KVStoreKey, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())
	return storeKey, ctx
}

// PoolManagerKeeper creates a test keeper for the pool manager module
func PoolManagerKeeper(t testing.TB) (*keeper.Keeper, sdk.Context) {
	k, ctx, _ := PoolManagerKeeperWithKey(t)
	return k, ctx
}

// PoolManagerKeeperWithKey also returns the store key so tests can inspect raw state.
func PoolManagerKeeperWithKey(t testing.TB) (*keeper.Keeper, sdk.Context, *storetypes.KVStoreKey) {
	storeKey, ctx := PoolManagerStore(t)
	k := keeper.NewKeeper(storeKey, TestAuthority)
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))
	return k, ctx, storeKey
}

// CreateTestPool creates an empty constant product pool with default fees.
func CreateTestPool(t testing.TB, k *keeper.Keeper, ctx sdk.Context, denom0, denom1 string) types.Pool {
	pool, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:  "creator",
		Denoms:   [2]string{denom0, denom1},
		Decimals: [2]uint32{6, 6},
		Fees:     types.DefaultPoolFees(),
		PoolType: types.PoolTypeConstantProduct,
	})
	require.NoError(t, err)
	return pool
}

// SeedTestPool makes the first deposit into a pool on behalf of provider.
func SeedTestPool(t testing.TB, k *keeper.Keeper, ctx sdk.Context, pool types.Pool, provider string, amount0, amount1 math.Int) *types.LiquidityResult {
	res, err := k.ProvideLiquidity(ctx, types.MsgProvideLiquidity{
		Sender:         provider,
		PoolIdentifier: pool.Identifier,
		Assets: [2]sdk.Coin{
			sdk.NewCoin(pool.Reserves[0].Denom, amount0),
			sdk.NewCoin(pool.Reserves[1].Denom, amount1),
		},
	})
	require.NoError(t, err)
	return res
}
