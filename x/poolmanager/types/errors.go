package types

import (
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Validation errors: the request is rejected before any computation.
var (
	ErrAssetMismatch            = errorsmod.Register(ModuleName, 1, "asset does not belong to pool")
	ErrZeroAmount               = errorsmod.Register(ModuleName, 2, "amount must be positive")
	ErrInvalidDenom             = errorsmod.Register(ModuleName, 3, "invalid denomination")
	ErrInvalidPoolIdentifier    = errorsmod.Register(ModuleName, 4, "invalid pool identifier")
	ErrInvalidDecimals          = errorsmod.Register(ModuleName, 5, "invalid decimals")
	ErrInvalidFees              = errorsmod.Register(ModuleName, 6, "invalid pool fees")
	ErrInvalidInitialLiquidity  = errorsmod.Register(ModuleName, 7, "initial liquidity does not exceed the minimum liquidity amount")
	ErrInvalidSlippageTolerance = errorsmod.Register(ModuleName, 8, "slippage tolerance must be within [0, 1]")
	ErrInvalidMaxSpread         = errorsmod.Register(ModuleName, 9, "max spread must be within [0, 1]")
	ErrInvalidBeliefPrice       = errorsmod.Register(ModuleName, 10, "belief price must be positive")
	ErrInsufficientShares       = errorsmod.Register(ModuleName, 11, "insufficient liquidity shares")
	ErrInvalidAddress           = errorsmod.Register(ModuleName, 12, "invalid address")
	ErrUnauthorized             = errorsmod.Register(ModuleName, 13, "unauthorized")
	ErrInvalidPoolType          = errorsmod.Register(ModuleName, 14, "invalid pool type")
	ErrZeroSharesMinted         = errorsmod.Register(ModuleName, 15, "deposit too small to mint any share")
	ErrZeroReturn               = errorsmod.Register(ModuleName, 16, "offer too small to return any asset")
	ErrFlashLoansDisabled       = errorsmod.Register(ModuleName, 17, "flash loans are disabled")
	ErrInvalidParams            = errorsmod.Register(ModuleName, 18, "invalid params")
	ErrInvalidGenesis           = errorsmod.Register(ModuleName, 19, "invalid genesis state")
)

// Arithmetic errors: the math cannot be carried out on the given state.
var (
	ErrOverflow              = errorsmod.Register(ModuleName, 20, "arithmetic overflow")
	ErrEmptyPool             = errorsmod.Register(ModuleName, 21, "pool has an empty reserve")
	ErrInsufficientLiquidity = errorsmod.Register(ModuleName, 22, "insufficient liquidity in pool")
	ErrInvalidPoolState      = errorsmod.Register(ModuleName, 23, "invalid pool state")
	ErrInvariantViolation    = errorsmod.Register(ModuleName, 24, "pool invariant violated")
	ErrNoConvergence         = errorsmod.Register(ModuleName, 25, "stableswap invariant did not converge")
)

// Guard rejections: the computation succeeded but a participant bound was exceeded.
var (
	ErrMaxSpreadAssertion   = errorsmod.Register(ModuleName, 30, "max spread assertion failed")
	ErrMaxSlippageAssertion = errorsmod.Register(ModuleName, 31, "slippage tolerance exceeded")
	ErrFlashLoanNotRepaid   = errorsmod.Register(ModuleName, 32, "flash loan was not repaid")
	ErrPoolLocked           = errorsmod.Register(ModuleName, 33, "pool is locked by a pending flash loan")
)

// Storage errors: the ledger does not hold what the request refers to.
var (
	ErrPoolNotFound      = errorsmod.Register(ModuleName, 40, "pool not found")
	ErrPoolAlreadyExists = errorsmod.Register(ModuleName, 41, "pool already exists")
	ErrCorruptRecord     = errorsmod.Register(ModuleName, 42, "corrupt store record")
	ErrNoPendingLoan     = errorsmod.Register(ModuleName, 43, "no pending flash loan")
)

// ErrorCategory groups module errors by the stage that produced them.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryArithmetic ErrorCategory = "arithmetic"
	CategoryGuard      ErrorCategory = "guard"
	CategoryStorage    ErrorCategory = "storage"
	CategoryUnknown    ErrorCategory = "unknown"
)

// CategoryOf reports the category of a module error, looking through wrapping.
func CategoryOf(err error) ErrorCategory {
	var regErr *errorsmod.Error
	if !errors.As(err, &regErr) || regErr.Codespace() != ModuleName {
		return CategoryUnknown
	}
	switch code := regErr.ABCICode(); {
	case code < 20:
		return CategoryValidation
	case code < 30:
		return CategoryArithmetic
	case code < 40:
		return CategoryGuard
	case code < 50:
		return CategoryStorage
	default:
		return CategoryUnknown
	}
}

// GuardViolation carries the observed value and the bound it broke.
type GuardViolation struct {
	Err      *errorsmod.Error
	Observed math.LegacyDec
	Limit    math.LegacyDec
}

// NewGuardViolation wraps a guard sentinel with the offending values.
func NewGuardViolation(err *errorsmod.Error, observed, limit math.LegacyDec) *GuardViolation {
	return &GuardViolation{Err: err, Observed: observed, Limit: limit}
}

func (e *GuardViolation) Error() string {
	return fmt.Sprintf("%s: observed %s, limit %s", e.Err.Error(), e.Observed, e.Limit)
}

func (e *GuardViolation) Unwrap() error {
	return e.Err
}
