package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// InitGenesis initializes the pool manager state from a genesis state.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, gs.Params); err != nil {
		return err
	}
	for _, pool := range gs.Pools {
		if err := k.pools.SetPool(ctx, pool); err != nil {
			return errorsmod.Wrapf(err, "genesis pool %s", pool.Identifier)
		}
	}
	for _, rec := range gs.Shares {
		if err := k.shares.MintShares(ctx, rec.PoolIdentifier, rec.Holder, rec.Shares); err != nil {
			return errorsmod.Wrapf(err, "genesis shares of %s in %s", rec.Holder, rec.PoolIdentifier)
		}
	}
	if msg, broken := AllInvariants(k)(sdk.UnwrapSDKContext(ctx)); broken {
		return errorsmod.Wrap(types.ErrInvalidGenesis, msg)
	}
	return nil
}

// ExportGenesis returns the pool manager state as a genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	gs := &types.GenesisState{Params: params, Pools: pools, Shares: []types.ShareRecord{}}
	if gs.Pools == nil {
		gs.Pools = []types.Pool{}
	}
	for _, pool := range pools {
		err := k.shares.IterateShares(ctx, pool.Identifier, func(holder string, shares math.Int) bool {
			gs.Shares = append(gs.Shares, types.ShareRecord{
				PoolIdentifier: pool.Identifier,
				Holder:         holder,
				Shares:         shares,
			})
			return false
		})
		if err != nil {
			return nil, err
		}
	}
	return gs, nil
}
