package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// FlashLoan lends a pool asset to callback and settles the loan when it returns.
// Both phases and the callback share one cache context: any failure discards all of it.
func (k Keeper) FlashLoan(goCtx context.Context, msg types.MsgFlashLoan, callback types.FlashLoanCallback) (*types.FlashLoanResult, error) {
	ctx, span := k.startSpan(goCtx, "poolmanager.FlashLoan")
	defer span.End()
	span.SetAttributes(
		attribute.String("pool_id", msg.PoolIdentifier),
		attribute.String("asset", msg.Asset.String()),
	)

	result, err := k.flashLoan(ctx, msg, callback)
	k.metrics.FlashLoans.WithLabelValues(msg.PoolIdentifier, msg.Asset.Denom, statusLabel(err)).Inc()
	if err != nil {
		k.recordFailure(ctx, span, msg.PoolIdentifier, "flash_loan", err)
		return nil, err
	}
	return result, nil
}

func (k Keeper) flashLoan(ctx sdk.Context, msg types.MsgFlashLoan, callback types.FlashLoanCallback) (*types.FlashLoanResult, error) {
	if callback == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidParams, "flash loan needs a callback")
	}
	cacheCtx, write := ctx.CacheContext()

	loan, err := k.BeginFlashLoan(cacheCtx, msg)
	if err != nil {
		return nil, err
	}
	repayment, err := callback(cacheCtx, loan)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "flash loan %s callback", loan.ID)
	}
	result, err := k.CompleteFlashLoan(cacheCtx, loan.PoolIdentifier, repayment)
	if err != nil {
		return nil, err
	}

	write()
	k.recordPoolGauges(ctx, result.Pool)
	return result, nil
}

// BeginFlashLoan snapshots the lent reserve, moves the loan out of the pool and locks it.
// Every mutating operation on the pool fails with ErrPoolLocked until CompleteFlashLoan.
func (k Keeper) BeginFlashLoan(ctx context.Context, msg types.MsgFlashLoan) (types.PendingLoan, error) {
	if err := msg.ValidateBasic(); err != nil {
		return types.PendingLoan{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.PendingLoan{}, err
	}
	if !params.FlashLoanEnabled {
		return types.PendingLoan{}, types.ErrFlashLoansDisabled
	}
	if err := k.assertPoolUnlocked(ctx, msg.PoolIdentifier); err != nil {
		return types.PendingLoan{}, err
	}
	pool, err := k.pools.GetPool(ctx, msg.PoolIdentifier)
	if err != nil {
		return types.PendingLoan{}, err
	}
	idx, ok := pool.ReserveIndex(msg.Asset.Denom)
	if !ok {
		return types.PendingLoan{}, errorsmod.Wrapf(types.ErrAssetMismatch, "%s is not traded by pool %s", msg.Asset.Denom, pool.Identifier)
	}
	reserve := pool.Reserves[idx].Amount
	if msg.Asset.Amount.GTE(reserve) {
		return types.PendingLoan{}, errorsmod.Wrapf(types.ErrInsufficientLiquidity, "loan of %s against reserve %s", msg.Asset, reserve)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	loan := types.PendingLoan{
		ID:              uuid.NewString(),
		PoolIdentifier:  pool.Identifier,
		Borrower:        msg.Borrower,
		Asset:           msg.Asset,
		SnapshotReserve: reserve,
		Fee:             params.FlashLoanFee.MulInt(msg.Asset.Amount).Ceil().TruncateInt(),
		BlockHeight:     sdkCtx.BlockHeight(),
	}

	pool.Reserves[idx].Amount = reserve.Sub(msg.Asset.Amount)
	if err := k.pools.SetPool(ctx, pool); err != nil {
		return types.PendingLoan{}, err
	}
	if err := k.setPendingLoan(ctx, loan); err != nil {
		return types.PendingLoan{}, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFlashLoanBegin,
			sdk.NewAttribute(types.AttributeKeyPoolIdentifier, pool.Identifier),
			sdk.NewAttribute(types.AttributeKeyLoanID, loan.ID),
			sdk.NewAttribute(types.AttributeKeySender, msg.Borrower),
			sdk.NewAttribute(types.AttributeKeyAssets, msg.Asset.String()),
			sdk.NewAttribute(types.AttributeKeyLoanFee, loan.Fee.String()),
		),
	)
	return loan, nil
}

// CompleteFlashLoan credits the repayment and releases the pool once the tracked
// reserve is back at its snapshot plus the loan fee.
func (k Keeper) CompleteFlashLoan(ctx context.Context, poolID string, repayment sdk.Coin) (*types.FlashLoanResult, error) {
	loan, found, err := k.GetPendingLoan(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errorsmod.Wrapf(types.ErrNoPendingLoan, "pool %s", poolID)
	}
	if repayment.Denom != loan.Asset.Denom {
		return nil, errorsmod.Wrapf(types.ErrAssetMismatch, "loan %s was in %s, repaid in %s", loan.ID, loan.Asset.Denom, repayment.Denom)
	}
	if repayment.Amount.IsNil() || repayment.Amount.IsNegative() {
		return nil, errorsmod.Wrapf(types.ErrZeroAmount, "repayment %s", repayment)
	}
	pool, err := k.pools.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	idx, _ := pool.ReserveIndex(loan.Asset.Denom)

	after := pool.Reserves[idx].Amount.Add(repayment.Amount)
	required := loan.RequiredReserve()
	if after.LT(required) {
		return nil, types.NewGuardViolation(types.ErrFlashLoanNotRepaid,
			math.LegacyNewDecFromInt(after), math.LegacyNewDecFromInt(required))
	}

	pool.Reserves[idx].Amount = after
	if err := k.pools.SetPool(ctx, pool); err != nil {
		return nil, err
	}
	k.deletePendingLoan(ctx, poolID)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFlashLoanComplete,
			sdk.NewAttribute(types.AttributeKeyPoolIdentifier, poolID),
			sdk.NewAttribute(types.AttributeKeyLoanID, loan.ID),
			sdk.NewAttribute(types.AttributeKeyAssets, repayment.String()),
			sdk.NewAttribute(types.AttributeKeyLoanFee, loan.Fee.String()),
		),
	)
	k.Logger(ctx).Info("flash loan settled",
		"pool_id", poolID,
		"loan_id", loan.ID,
		"borrower", loan.Borrower,
		"borrowed", loan.Asset.String(),
		"repaid", repayment.String(),
	)

	return &types.FlashLoanResult{
		LoanID:      loan.ID,
		Borrowed:    loan.Asset,
		Repaid:      repayment,
		FeeRetained: after.Sub(loan.SnapshotReserve),
		Pool:        pool,
	}, nil
}

// GetPendingLoan returns the in-flight loan of a pool, if any.
func (k Keeper) GetPendingLoan(ctx context.Context, poolID string) (types.PendingLoan, bool, error) {
	bz := k.getStore(ctx).Get(types.PendingLoanKey(poolID))
	if bz == nil {
		return types.PendingLoan{}, false, nil
	}
	var loan types.PendingLoan
	if err := json.Unmarshal(bz, &loan); err != nil {
		return types.PendingLoan{}, false, errorsmod.Wrapf(types.ErrCorruptRecord, "pending loan of pool %s: %s", poolID, err)
	}
	return loan, true, nil
}

func (k Keeper) setPendingLoan(ctx context.Context, loan types.PendingLoan) error {
	bz, err := json.Marshal(loan)
	if err != nil {
		return errorsmod.Wrapf(types.ErrCorruptRecord, "encode pending loan: %s", err)
	}
	k.getStore(ctx).Set(types.PendingLoanKey(loan.PoolIdentifier), bz)
	return nil
}

func (k Keeper) deletePendingLoan(ctx context.Context, poolID string) {
	k.getStore(ctx).Delete(types.PendingLoanKey(poolID))
}

// assertPoolUnlocked rejects mutations of a pool with an in-flight flash loan.
func (k Keeper) assertPoolUnlocked(ctx context.Context, poolID string) error {
	if k.getStore(ctx).Has(types.PendingLoanKey(poolID)) {
		return errorsmod.Wrapf(types.ErrPoolLocked, "pool %s", poolID)
	}
	return nil
}
