package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/liquidityhub/testutil/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

const (
	alice = "alice"
	bob   = "bob"
)

// setupSeededPool creates uluna-uusd with default fees and a 1M/1M first deposit from alice.
func setupSeededPool(t *testing.T) (*keeper.Keeper, sdk.Context, *storetypes.KVStoreKey, types.Pool) {
	k, ctx, storeKey := keepertest.PoolManagerKeeperWithKey(t)
	pool := keepertest.CreateTestPool(t, k, ctx, "uluna", "uusd")
	keepertest.SeedTestPool(t, k, ctx, pool, alice, math.NewInt(1_000_000), math.NewInt(1_000_000))

	pool, err := k.GetPool(ctx, pool.Identifier)
	require.NoError(t, err)
	return k, ctx, storeKey, pool
}

func rawPool(ctx sdk.Context, storeKey *storetypes.KVStoreKey, poolID string) []byte {
	return ctx.KVStore(storeKey).Get(types.PoolKey(poolID))
}

func hasEvent(ctx sdk.Context, eventType string) bool {
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == eventType {
			return true
		}
	}
	return false
}

func decPtr(s string) *math.LegacyDec {
	d := math.LegacyMustNewDecFromStr(s)
	return &d
}

func TestKeeper_Defaults(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)
	require.Equal(t, keepertest.TestAuthority, k.GetAuthority())

	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.True(t, params.FlashLoanEnabled)

	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Empty(t, pools)
}
