package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// Keeper of the pool manager store
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
	pools     types.PoolLedger
	shares    types.ShareLedger
	metrics   *PoolManagerMetrics
	tracer    trace.Tracer
}

// NewKeeper creates a keeper whose ledgers live in the given store.
func NewKeeper(key storetypes.StoreKey, authority string) *Keeper {
	return NewKeeperWithLedgers(key, authority, NewKVPoolLedger(key), NewKVShareLedger(key))
}

// NewKeeperWithLedgers creates a keeper over caller-supplied ledgers.
// The store key still backs params and flash loan markers.
func NewKeeperWithLedgers(key storetypes.StoreKey, authority string, pools types.PoolLedger, shares types.ShareLedger) *Keeper {
	return &Keeper{
		storeKey:  key,
		authority: authority,
		pools:     pools,
		shares:    shares,
		metrics:   NewPoolManagerMetrics(),
		tracer:    otel.Tracer("x/" + types.ModuleName),
	}
}

// GetAuthority returns the account allowed to update pool fees.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the pool manager module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// startSpan opens a tracing span and returns a context carrying it.
func (k Keeper) startSpan(ctx context.Context, name string) (sdk.Context, trace.Span) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	spanCtx, span := k.tracer.Start(sdkCtx.Context(), name)
	return sdkCtx.WithContext(spanCtx), span
}
