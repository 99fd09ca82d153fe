package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// RegisterInvariants registers all pool manager invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-reserves", PoolReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "flash-loans-settled", FlashLoansSettledInvariant(k))
}

// AllInvariants runs all invariants of the pool manager module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return FlashLoansSettledInvariant(k)(ctx)
	}
}

// ShareSupplyInvariant checks that each pool's share supply equals the sum of holder balances
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
		}
		for _, pool := range pools {
			sum := math.ZeroInt()
			err := k.shares.IterateShares(ctx, pool.Identifier, func(_ string, shares math.Int) bool {
				sum = sum.Add(shares)
				return false
			})
			if err != nil {
				count++
				msg += fmt.Sprintf("\tpool %s: %s\n", pool.Identifier, err)
				continue
			}
			total, err := k.shares.GetTotalShares(ctx, pool.Identifier)
			if err != nil || !sum.Equal(total) {
				count++
				msg += fmt.Sprintf("\tpool %s: holders sum to %s, supply is %s\n", pool.Identifier, sum, total)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with mismatched share supply\n%s", count, msg),
		), broken
	}
}

// PoolReservesInvariant checks that every pool is well formed and that reserves and supply are
// either both empty or both present
func PoolReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-reserves", err.Error()), true
		}
		for _, pool := range pools {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("\tpool %s: %s\n", pool.Identifier, err)
				continue
			}
			total, err := k.shares.GetTotalShares(ctx, pool.Identifier)
			if err != nil {
				count++
				msg += fmt.Sprintf("\tpool %s: %s\n", pool.Identifier, err)
				continue
			}
			amounts := pool.Amounts()
			if total.IsZero() && (!amounts[0].IsZero() || !amounts[1].IsZero()) {
				count++
				msg += fmt.Sprintf("\tpool %s: holds %s/%s without shares\n", pool.Identifier, amounts[0], amounts[1])
			}
			if total.IsPositive() && (amounts[0].IsZero() || amounts[1].IsZero()) {
				count++
				msg += fmt.Sprintf("\tpool %s: %s shares over an empty reserve\n", pool.Identifier, total)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-reserves",
			fmt.Sprintf("found %d pools with invalid reserves\n%s", count, msg),
		), broken
	}
}

// FlashLoansSettledInvariant checks that no flash loan outlives the operation that opened it
func FlashLoansSettledInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "flash-loans-settled", err.Error()), true
		}
		for _, pool := range pools {
			if loan, found, _ := k.GetPendingLoan(ctx, pool.Identifier); found {
				count++
				msg += fmt.Sprintf("\tpool %s: loan %s of %s is pending\n", pool.Identifier, loan.ID, loan.Asset)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "flash-loans-settled",
			fmt.Sprintf("found %d unsettled flash loans\n%s", count, msg),
		), broken
	}
}
