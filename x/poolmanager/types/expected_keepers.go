package types

import (
	"context"

	"cosmossdk.io/math"
)

// PoolLedger owns the reserve state of every pool.
type PoolLedger interface {
	GetPool(ctx context.Context, poolID string) (Pool, error)
	SetPool(ctx context.Context, pool Pool) error
	HasPool(ctx context.Context, poolID string) bool
	IteratePools(ctx context.Context, cb func(pool Pool) (stop bool)) error
}

// ShareLedger owns the liquidity share balances of every pool.
type ShareLedger interface {
	GetShares(ctx context.Context, poolID, holder string) (math.Int, error)
	GetTotalShares(ctx context.Context, poolID string) (math.Int, error)
	MintShares(ctx context.Context, poolID, holder string, amount math.Int) error
	BurnShares(ctx context.Context, poolID, holder string, amount math.Int) error
	IterateShares(ctx context.Context, poolID string, cb func(holder string, shares math.Int) (stop bool)) error
}
