package guard_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquidityhub/x/poolmanager/guard"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func pair(a, b int64) [2]math.Int {
	return [2]math.Int{math.NewInt(a), math.NewInt(b)}
}

func TestAssertSlippageTolerance(t *testing.T) {
	pools := pair(100, 200)

	require.NoError(t, guard.AssertSlippageTolerance(nil, pair(500, 1), pools))
	require.NoError(t, guard.AssertSlippageTolerance(dec("0"), pair(100, 200), pools))

	err := guard.AssertSlippageTolerance(dec("0"), pair(110, 200), pools)
	require.ErrorIs(t, err, types.ErrMaxSlippageAssertion)
	require.Equal(t, types.CategoryGuard, types.CategoryOf(err))

	require.NoError(t, guard.AssertSlippageTolerance(dec("0.1"), pair(110, 200), pools))

	// skew in the other direction
	require.ErrorIs(t, guard.AssertSlippageTolerance(dec("0.1"), pair(100, 250), pools), types.ErrMaxSlippageAssertion)
}

func TestAssertSlippageTolerance_Boundary(t *testing.T) {
	pools := pair(100, 200)
	// 125/200 * (1 - 0.2) is exactly 100/200
	require.NoError(t, guard.AssertSlippageTolerance(dec("0.2"), pair(125, 200), pools))

	err := guard.AssertSlippageTolerance(dec("0.19"), pair(125, 200), pools)
	require.ErrorIs(t, err, types.ErrMaxSlippageAssertion)

	var violation *types.GuardViolation
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "0.500000000000000000", violation.Limit.String())
}

func TestAssertSlippageTolerance_Invalid(t *testing.T) {
	err := guard.AssertSlippageTolerance(dec("1.5"), pair(1, 1), pair(1, 1))
	require.ErrorIs(t, err, types.ErrInvalidSlippageTolerance)
	require.Equal(t, types.CategoryValidation, types.CategoryOf(err))

	require.ErrorIs(t, guard.AssertSlippageTolerance(dec("0.1"), pair(1, 1), pair(0, 1)), types.ErrEmptyPool)
}
