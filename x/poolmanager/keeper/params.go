package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// GetParams returns the module parameters, or the defaults when none were stored.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, errorsmod.Wrapf(types.ErrCorruptRecord, "params: %s", err)
	}
	return params, nil
}

// SetParams validates and stores the module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return errorsmod.Wrapf(types.ErrCorruptRecord, "encode params: %s", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}
