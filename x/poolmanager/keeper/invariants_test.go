package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquidityhub/x/poolmanager/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

type routeRecorder struct {
	routes []string
}

func (r *routeRecorder) RegisterRoute(moduleName, route string, _ sdk.Invariant) {
	r.routes = append(r.routes, moduleName+"/"+route)
}

func TestRegisterInvariants(t *testing.T) {
	k, _, _, _ := setupSeededPool(t)

	var ir routeRecorder
	keeper.RegisterInvariants(&ir, *k)
	require.Equal(t, []string{
		"poolmanager/share-supply",
		"poolmanager/pool-reserves",
		"poolmanager/flash-loans-settled",
	}, ir.routes)
}

func TestShareSupplyInvariant(t *testing.T) {
	k, ctx, storeKey, pool := setupSeededPool(t)

	_, broken := keeper.ShareSupplyInvariant(*k)(ctx)
	require.False(t, broken)

	bz, err := math.NewInt(5).Marshal()
	require.NoError(t, err)
	ctx.KVStore(storeKey).Set(types.TotalSharesKey(pool.Identifier), bz)

	msg, broken := keeper.ShareSupplyInvariant(*k)(ctx)
	require.True(t, broken)
	require.Contains(t, msg, "found 1 pools with mismatched share supply")

	_, broken = keeper.AllInvariants(*k)(ctx)
	require.True(t, broken)
}

func TestPoolReservesInvariant(t *testing.T) {
	k, ctx, storeKey, pool := setupSeededPool(t)

	_, broken := keeper.PoolReservesInvariant(*k)(ctx)
	require.False(t, broken)

	// an untouched pool is consistent too
	other, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:  "creator",
		Denoms:   [2]string{"uatom", "uosmo"},
		Decimals: [2]uint32{6, 6},
		Fees:     types.DefaultPoolFees(),
		PoolType: types.PoolTypeConstantProduct,
	})
	require.NoError(t, err)
	_, broken = keeper.PoolReservesInvariant(*k)(ctx)
	require.False(t, broken)

	drained := pool
	drained.Reserves[1].Amount = math.ZeroInt()
	require.NoError(t, keeper.NewKVPoolLedger(storeKey).SetPool(ctx, drained))

	msg, broken := keeper.PoolReservesInvariant(*k)(ctx)
	require.True(t, broken)
	require.Contains(t, msg, pool.Identifier)
	require.NotContains(t, msg, other.Identifier)
}
