package keeper

import (
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func guardLabel(err error) string {
	switch {
	case errors.Is(err, types.ErrMaxSpreadAssertion):
		return "max_spread"
	case errors.Is(err, types.ErrMaxSlippageAssertion):
		return "slippage_tolerance"
	case errors.Is(err, types.ErrFlashLoanNotRepaid):
		return "flash_loan_repayment"
	case errors.Is(err, types.ErrPoolLocked):
		return "pool_locked"
	default:
		return "other"
	}
}

// recordFailure marks the span failed and logs the rejection at a level matching its category.
func (k Keeper) recordFailure(ctx sdk.Context, span trace.Span, poolID, operation string, err error) {
	category := types.CategoryOf(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error_category", string(category)))

	logger := k.Logger(ctx)
	switch category {
	case types.CategoryGuard:
		k.metrics.GuardRejections.WithLabelValues(poolID, guardLabel(err)).Inc()
		var violation *types.GuardViolation
		if errors.As(err, &violation) {
			logger.Debug("guard rejected operation", "operation", operation, "pool_id", poolID,
				"observed", violation.Observed.String(), "limit", violation.Limit.String())
			return
		}
		logger.Debug("guard rejected operation", "operation", operation, "pool_id", poolID, "error", err)
	case types.CategoryArithmetic:
		if errors.Is(err, types.ErrInvariantViolation) || errors.Is(err, types.ErrInvalidPoolState) {
			logger.Error("pool state rejected operation", "operation", operation, "pool_id", poolID, "error", err)
			return
		}
		logger.Debug("operation rejected", "operation", operation, "pool_id", poolID, "category", category, "error", err)
	default:
		logger.Debug("operation rejected", "operation", operation, "pool_id", poolID, "category", category, "error", err)
	}
}
