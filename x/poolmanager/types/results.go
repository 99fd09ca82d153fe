package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SwapResult reports a committed swap. Every fee is denominated in the ask asset.
type SwapResult struct {
	ReturnAsset      sdk.Coin `json:"return_asset"`
	SwapFeeAsset     sdk.Coin `json:"swap_fee_asset"`
	ProtocolFeeAsset sdk.Coin `json:"protocol_fee_asset"`
	BurnFeeAsset     sdk.Coin `json:"burn_fee_asset"`
	SpreadAmount     math.Int `json:"spread_amount"`
	Pool             Pool     `json:"pool"`
}

// LiquidityResult reports a committed deposit.
type LiquidityResult struct {
	Receiver       string      `json:"receiver"`
	MintedShares   math.Int    `json:"minted_shares"`
	LockedShares   math.Int    `json:"locked_shares"`
	AcceptedAssets [2]sdk.Coin `json:"accepted_assets"`
	// DonatedAssets is the surplus of a disproportionate deposit left in the pool.
	DonatedAssets [2]sdk.Coin `json:"donated_assets"`
	Pool          Pool        `json:"pool"`
}

// WithdrawResult reports a committed withdrawal.
type WithdrawResult struct {
	ReturnedAssets [2]sdk.Coin `json:"returned_assets"`
	BurnedShares   math.Int    `json:"burned_shares"`
	Pool           Pool        `json:"pool"`
}

// FlashLoanResult reports a settled flash loan.
type FlashLoanResult struct {
	LoanID      string   `json:"loan_id"`
	Borrowed    sdk.Coin `json:"borrowed"`
	Repaid      sdk.Coin `json:"repaid"`
	FeeRetained math.Int `json:"fee_retained"`
	Pool        Pool     `json:"pool"`
}
