package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/liquidityhub/testutil/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func TestCreatePool(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)

	pool := keepertest.CreateTestPool(t, k, ctx, "uluna", "uusd")
	require.Equal(t, "uluna-uusd", pool.Identifier)
	require.True(t, hasEvent(ctx, types.EventTypeCreatePool))

	stored, err := k.GetPool(ctx, pool.Identifier)
	require.NoError(t, err)
	require.True(t, stored.Reserves[0].Amount.IsZero())
	require.True(t, stored.Fees.Total().Equal(types.DefaultPoolFees().Total()))

	_, err = k.CreatePool(ctx, types.MsgCreatePool{
		Creator:  "creator",
		Denoms:   [2]string{"uluna", "uusd"},
		Decimals: [2]uint32{6, 6},
		Fees:     types.DefaultPoolFees(),
		PoolType: types.PoolTypeConstantProduct,
	})
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
	require.Equal(t, types.CategoryStorage, types.CategoryOf(err))
}

func TestCreatePool_Invalid(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)

	_, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:  "creator",
		Denoms:   [2]string{"uluna", "uusd"},
		Decimals: [2]uint32{6, 6},
		Fees:     types.NewPoolFees(math.LegacyNewDecWithPrec(6, 1), math.LegacyNewDecWithPrec(4, 1), math.LegacyZeroDec()),
		PoolType: types.PoolTypeConstantProduct,
	})
	require.ErrorIs(t, err, types.ErrInvalidFees)
}

func TestGetPool_NotFound(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)

	_, err := k.GetPool(ctx, "missing")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.Equal(t, types.CategoryStorage, types.CategoryOf(err))

	_, err = k.GetShares(ctx, "missing", alice)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestGetShares(t *testing.T) {
	k, ctx, _, pool := setupSeededPool(t)

	shares, err := k.GetShares(ctx, pool.Identifier, alice)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(999_000), shares.Amount)
	require.Equal(t, keeper.ShareDenom(pool.Identifier), shares.Denom)

	locked, err := k.GetShares(ctx, pool.Identifier, types.LockedLiquidityHolder)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(types.MinimumLiquidityAmount), locked.Amount)

	total, err := k.GetTotalShares(ctx, pool.Identifier)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), total.Amount)
}

func TestUpdatePoolFees(t *testing.T) {
	k, ctx := keepertest.PoolManagerKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, "uluna", "uusd")
	newFees := types.NewPoolFees(math.LegacyNewDecWithPrec(5, 3), math.LegacyZeroDec(), math.LegacyNewDecWithPrec(1, 3))

	_, err := k.UpdatePoolFees(ctx, types.MsgUpdatePoolFees{Authority: bob, PoolIdentifier: pool.Identifier, Fees: newFees})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	updated, err := k.UpdatePoolFees(ctx, types.MsgUpdatePoolFees{
		Authority:      keepertest.TestAuthority,
		PoolIdentifier: pool.Identifier,
		Fees:           newFees,
	})
	require.NoError(t, err)
	require.True(t, updated.Fees.BurnFee.Share.Equal(math.LegacyNewDecWithPrec(1, 3)))
	require.True(t, hasEvent(ctx, types.EventTypeUpdatePoolFees))

	_, err = k.UpdatePoolFees(ctx, types.MsgUpdatePoolFees{Authority: keepertest.TestAuthority, PoolIdentifier: "missing", Fees: newFees})
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}
