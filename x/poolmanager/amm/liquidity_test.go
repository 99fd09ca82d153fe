package amm_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/liquidityhub/x/poolmanager/amm"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func ints(a, b int64) [2]math.Int {
	return [2]math.Int{math.NewInt(a), math.NewInt(b)}
}

var sixDecimals = [2]uint32{6, 6}

func TestProvideLiquidity_Bootstrap(t *testing.T) {
	tests := []struct {
		name     string
		poolType types.PoolType
		deposits [2]math.Int
		minted   int64
		err      error
	}{
		{"exactly the minimum is rejected", types.PoolTypeConstantProduct, ints(1000, 1000), 0, types.ErrInvalidInitialLiquidity},
		{"below the minimum is rejected", types.PoolTypeConstantProduct, ints(10, 100_000), 0, types.ErrInvalidInitialLiquidity},
		{"one above the minimum", types.PoolTypeConstantProduct, ints(1001, 1001), 1, nil},
		{"geometric mean", types.PoolTypeConstantProduct, ints(2000, 2000), 1000, nil},
		{"floored square root", types.PoolTypeConstantProduct, ints(1000, 4001), 1000, nil},
		{"stableswap sums", types.PoolTypeStableSwap, ints(600, 500), 100, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			comp, err := amm.ComputeProvideLiquidity(tc.poolType, ints(0, 0), sixDecimals, math.ZeroInt(), tc.deposits)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Equal(t, types.CategoryValidation, types.CategoryOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, math.NewInt(tc.minted), comp.MintedShares)
			require.Equal(t, math.NewInt(types.MinimumLiquidityAmount), comp.LockedShares)
			require.Equal(t, tc.deposits, comp.AcceptedAmounts)
		})
	}
}

func TestProvideLiquidity_StableSwapNormalizesDecimals(t *testing.T) {
	// 0.0006 of a 6-decimal asset and 0.0005 of an 18-decimal asset
	deposits := [2]math.Int{math.NewInt(600), math.NewInt(500_000_000_000_000)}
	comp, err := amm.ComputeProvideLiquidity(types.PoolTypeStableSwap, ints(0, 0), [2]uint32{6, 18}, math.ZeroInt(), deposits)
	require.NoError(t, err)
	require.Equal(t, "1099999999999000", comp.MintedShares.String())
}

func TestProvideLiquidity_Proportional(t *testing.T) {
	comp, err := amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, ints(100, 200), sixDecimals, math.NewInt(100), ints(100, 200))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), comp.MintedShares)
	require.Equal(t, ints(100, 200), comp.AcceptedAmounts)
	require.True(t, comp.LockedShares.IsZero())
}

func TestProvideLiquidity_Disproportionate(t *testing.T) {
	comp, err := amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, ints(200, 200), sixDecimals, math.NewInt(100), ints(100, 200))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), comp.MintedShares)
	// the second asset is only accepted for its proportional part, the rest is a donation
	require.Equal(t, ints(100, 100), comp.AcceptedAmounts)
}

func TestProvideLiquidity_AcceptedRoundsUp(t *testing.T) {
	// shares: floor(10*7/3)=23 and floor(100*7/11)=63, the first asset limits
	comp, err := amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, ints(3, 11), sixDecimals, math.NewInt(7), ints(10, 100))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(23), comp.MintedShares)
	require.Equal(t, ints(10, 37), comp.AcceptedAmounts) // ceil(23*11/7) = 37
}

func TestProvideLiquidity_Rejections(t *testing.T) {
	_, err := amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, ints(1_000_000, 1_000_000), sixDecimals, math.NewInt(1000), ints(1, 1))
	require.ErrorIs(t, err, types.ErrZeroSharesMinted)

	_, err = amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, ints(5, 5), sixDecimals, math.ZeroInt(), ints(2000, 2000))
	require.ErrorIs(t, err, types.ErrInvalidPoolState)

	_, err = amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, ints(0, 5), sixDecimals, math.NewInt(10), ints(2000, 2000))
	require.ErrorIs(t, err, types.ErrInvalidPoolState)

	_, err = amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, ints(0, 0), sixDecimals, math.ZeroInt(), ints(0, 2000))
	require.ErrorIs(t, err, types.ErrZeroAmount)
}

func TestWithdrawLiquidity(t *testing.T) {
	amounts, err := amm.ComputeWithdrawLiquidity(ints(1_010_000, 990_129), math.NewInt(1_000_000), math.NewInt(499_500))
	require.NoError(t, err)
	require.Equal(t, ints(504_495, 494_569), amounts)

	// dust withdrawals may return nothing of an asset
	amounts, err = amm.ComputeWithdrawLiquidity(ints(10, 1_000_000), math.NewInt(1_000_000), math.NewInt(1))
	require.NoError(t, err)
	require.True(t, amounts[0].IsZero())
	require.Equal(t, math.NewInt(1), amounts[1])

	_, err = amm.ComputeWithdrawLiquidity(ints(10, 10), math.NewInt(100), math.NewInt(101))
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	_, err = amm.ComputeWithdrawLiquidity(ints(0, 0), math.ZeroInt(), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrEmptyPool)
}

func TestIntegerSqrt(t *testing.T) {
	require.Equal(t, math.NewInt(1000), amm.IntegerSqrt(math.NewInt(1_000_000)))
	require.Equal(t, math.NewInt(999), amm.IntegerSqrt(math.NewInt(999_999)))
	require.True(t, amm.IntegerSqrt(math.ZeroInt()).IsZero())
}

// Depositing and immediately withdrawing the minted shares never returns more than was deposited.
func TestProvideThenWithdraw_NoProfit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserves := [2]math.Int{
			math.NewInt(rapid.Int64Range(1_000, 1_000_000_000_000).Draw(t, "reserve0")),
			math.NewInt(rapid.Int64Range(1_000, 1_000_000_000_000).Draw(t, "reserve1")),
		}
		totalShares := math.NewInt(rapid.Int64Range(1_000, 1_000_000_000_000).Draw(t, "totalShares"))
		deposits := [2]math.Int{
			math.NewInt(rapid.Int64Range(1, 1_000_000_000).Draw(t, "deposit0")),
			math.NewInt(rapid.Int64Range(1, 1_000_000_000).Draw(t, "deposit1")),
		}

		comp, err := amm.ComputeProvideLiquidity(types.PoolTypeConstantProduct, reserves, sixDecimals, totalShares, deposits)
		if err != nil {
			require.ErrorIs(t, err, types.ErrZeroSharesMinted)
			return
		}
		for i := range deposits {
			require.True(t, comp.AcceptedAmounts[i].LTE(deposits[i]))
		}

		after := [2]math.Int{reserves[0].Add(deposits[0]), reserves[1].Add(deposits[1])}
		out, err := amm.ComputeWithdrawLiquidity(after, totalShares.Add(comp.MintedShares), comp.MintedShares)
		require.NoError(t, err)
		for i := range deposits {
			require.True(t, out[i].LTE(deposits[i]), "asset %d: withdrew %s of %s deposited", i, out[i], deposits[i])
		}
	})
}
