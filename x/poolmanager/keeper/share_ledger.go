package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

var _ types.ShareLedger = KVShareLedger{}

// KVShareLedger stores holder balances and per-pool supply.
type KVShareLedger struct {
	storeKey storetypes.StoreKey
}

// NewKVShareLedger returns a share ledger backed by the given store.
func NewKVShareLedger(key storetypes.StoreKey) KVShareLedger {
	return KVShareLedger{storeKey: key}
}

func (l KVShareLedger) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.storeKey)
}

func (l KVShareLedger) getInt(ctx context.Context, key []byte) (math.Int, error) {
	bz := l.store(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.Int{}, errorsmod.Wrapf(types.ErrCorruptRecord, "share amount at key %X: %s", key, err)
	}
	return amount, nil
}

func (l KVShareLedger) setInt(ctx context.Context, key []byte, amount math.Int) error {
	store := l.store(ctx)
	if amount.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return errorsmod.Wrapf(types.ErrCorruptRecord, "encode share amount: %s", err)
	}
	store.Set(key, bz)
	return nil
}

// GetShares returns a holder's share balance in a pool
func (l KVShareLedger) GetShares(ctx context.Context, poolID, holder string) (math.Int, error) {
	return l.getInt(ctx, types.ShareBalanceKey(poolID, holder))
}

// GetTotalShares returns the outstanding shares of a pool
func (l KVShareLedger) GetTotalShares(ctx context.Context, poolID string) (math.Int, error) {
	return l.getInt(ctx, types.TotalSharesKey(poolID))
}

// MintShares credits a holder and grows the supply
func (l KVShareLedger) MintShares(ctx context.Context, poolID, holder string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrapf(types.ErrZeroAmount, "mint %v shares", amount)
	}
	if amount.IsZero() {
		return nil
	}
	balance, err := l.GetShares(ctx, poolID, holder)
	if err != nil {
		return err
	}
	total, err := l.GetTotalShares(ctx, poolID)
	if err != nil {
		return err
	}
	newTotal := total.Add(amount)
	if err := types.ValidateWidth("share supply", newTotal); err != nil {
		return err
	}
	if err := l.setInt(ctx, types.ShareBalanceKey(poolID, holder), balance.Add(amount)); err != nil {
		return err
	}
	return l.setInt(ctx, types.TotalSharesKey(poolID), newTotal)
}

// BurnShares debits a holder and shrinks the supply
func (l KVShareLedger) BurnShares(ctx context.Context, poolID, holder string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return errorsmod.Wrapf(types.ErrZeroAmount, "burn %v shares", amount)
	}
	balance, err := l.GetShares(ctx, poolID, holder)
	if err != nil {
		return err
	}
	if balance.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientShares, "%s holds %s, burning %s", holder, balance, amount)
	}
	total, err := l.GetTotalShares(ctx, poolID)
	if err != nil {
		return err
	}
	if total.LT(amount) {
		return errorsmod.Wrapf(types.ErrInvalidPoolState, "pool %s supply %s below burn of %s", poolID, total, amount)
	}
	if err := l.setInt(ctx, types.ShareBalanceKey(poolID, holder), balance.Sub(amount)); err != nil {
		return err
	}
	return l.setInt(ctx, types.TotalSharesKey(poolID), total.Sub(amount))
}

// IterateShares walks every holder of a pool until cb returns true
func (l KVShareLedger) IterateShares(ctx context.Context, poolID string, cb func(holder string, shares math.Int) (stop bool)) error {
	prefix := types.ShareBalancePrefix(poolID)
	iterator := storetypes.KVStorePrefixIterator(l.store(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return errorsmod.Wrapf(types.ErrCorruptRecord, "share balance at key %X: %s", iterator.Key(), err)
		}
		if cb(string(iterator.Key()[len(prefix):]), shares) {
			break
		}
	}
	return nil
}
