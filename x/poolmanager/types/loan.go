package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PendingLoan marks a pool as lent out between the two phases of a flash loan.
type PendingLoan struct {
	ID             string   `json:"id"`
	PoolIdentifier string   `json:"pool_identifier"`
	Borrower       string   `json:"borrower"`
	Asset          sdk.Coin `json:"asset"`
	// SnapshotReserve is the tracked reserve of the lent asset before the loan.
	SnapshotReserve math.Int `json:"snapshot_reserve"`
	Fee             math.Int `json:"fee"`
	BlockHeight     int64    `json:"block_height"`
}

// RequiredReserve is the reserve the pool must hold again when the loan settles.
func (l PendingLoan) RequiredReserve() math.Int {
	return l.SnapshotReserve.Add(l.Fee)
}

// FlashLoanCallback runs with the borrowed funds and returns what it pays back.
type FlashLoanCallback func(ctx sdk.Context, loan PendingLoan) (sdk.Coin, error)
