package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// ShareRecord is a holder balance in genesis.
type ShareRecord struct {
	PoolIdentifier string   `json:"pool_identifier"`
	Holder         string   `json:"holder"`
	Shares         math.Int `json:"shares"`
}

// GenesisState is the full persisted state of the module.
type GenesisState struct {
	Params Params        `json:"params"`
	Pools  []Pool        `json:"pools"`
	Shares []ShareRecord `json:"shares"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pools:  []Pool{},
		Shares: []ShareRecord{},
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	pools := make(map[string]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if _, dup := pools[pool.Identifier]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate pool %s", pool.Identifier)
		}
		if err := pool.Validate(); err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "pool %s: %s", pool.Identifier, err)
		}
		pools[pool.Identifier] = struct{}{}
	}

	seen := make(map[string]struct{}, len(gs.Shares))
	for _, rec := range gs.Shares {
		if _, ok := pools[rec.PoolIdentifier]; !ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "shares for unknown pool %s", rec.PoolIdentifier)
		}
		if rec.Holder == "" {
			return errorsmod.Wrapf(ErrInvalidGenesis, "empty holder in pool %s", rec.PoolIdentifier)
		}
		if rec.Shares.IsNil() || !rec.Shares.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidGenesis, "non-positive shares for %s in pool %s", rec.Holder, rec.PoolIdentifier)
		}
		key := rec.PoolIdentifier + "/" + rec.Holder
		if _, dup := seen[key]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate shares for %s in pool %s", rec.Holder, rec.PoolIdentifier)
		}
		seen[key] = struct{}{}
	}
	return nil
}
