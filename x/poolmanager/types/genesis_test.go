package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func TestGenesisValidate(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())

	pool := validPool()
	gs := types.GenesisState{
		Params: types.DefaultParams(),
		Pools:  []types.Pool{pool},
		Shares: []types.ShareRecord{{PoolIdentifier: pool.Identifier, Holder: "alice", Shares: math.NewInt(5)}},
	}
	require.NoError(t, gs.Validate())

	dupPool := gs
	dupPool.Pools = []types.Pool{pool, pool}
	require.ErrorIs(t, dupPool.Validate(), types.ErrInvalidGenesis)

	orphan := gs
	orphan.Shares = []types.ShareRecord{{PoolIdentifier: "missing", Holder: "alice", Shares: math.NewInt(5)}}
	require.ErrorIs(t, orphan.Validate(), types.ErrInvalidGenesis)

	badParams := gs
	badParams.Params.FlashLoanFee = math.LegacyOneDec()
	require.ErrorIs(t, badParams.Validate(), types.ErrInvalidParams)
}
