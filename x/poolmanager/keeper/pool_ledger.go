package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

var _ types.PoolLedger = KVPoolLedger{}

// KVPoolLedger stores pools as JSON under PoolKeyPrefix.
type KVPoolLedger struct {
	storeKey storetypes.StoreKey
}

// NewKVPoolLedger returns a pool ledger backed by the given store.
func NewKVPoolLedger(key storetypes.StoreKey) KVPoolLedger {
	return KVPoolLedger{storeKey: key}
}

func (l KVPoolLedger) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.storeKey)
}

// GetPool returns a pool by identifier
func (l KVPoolLedger) GetPool(ctx context.Context, poolID string) (types.Pool, error) {
	bz := l.store(ctx).Get(types.PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, errorsmod.Wrapf(types.ErrPoolNotFound, "pool %s", poolID)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, errorsmod.Wrapf(types.ErrCorruptRecord, "pool %s: %s", poolID, err)
	}
	return pool, nil
}

// SetPool validates and stores a pool
func (l KVPoolLedger) SetPool(ctx context.Context, pool types.Pool) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(pool)
	if err != nil {
		return errorsmod.Wrapf(types.ErrCorruptRecord, "encode pool %s: %s", pool.Identifier, err)
	}
	l.store(ctx).Set(types.PoolKey(pool.Identifier), bz)
	return nil
}

// HasPool reports whether a pool is stored under the identifier
func (l KVPoolLedger) HasPool(ctx context.Context, poolID string) bool {
	return l.store(ctx).Has(types.PoolKey(poolID))
}

// IteratePools walks every pool in identifier order until cb returns true
func (l KVPoolLedger) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(l.store(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return errorsmod.Wrapf(types.ErrCorruptRecord, "pool at key %X: %s", iterator.Key(), err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}
