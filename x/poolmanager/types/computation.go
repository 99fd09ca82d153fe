package types

import (
	"cosmossdk.io/math"
)

// SwapComputation is the outcome of pricing an offer against a pool.
type SwapComputation struct {
	ReturnAmount      math.Int `json:"return_amount"`
	SpreadAmount      math.Int `json:"spread_amount"`
	SwapFeeAmount     math.Int `json:"swap_fee_amount"`
	ProtocolFeeAmount math.Int `json:"protocol_fee_amount"`
	BurnFeeAmount     math.Int `json:"burn_fee_amount"`
}

// AskOutflow is what leaves the ask reserve: the return plus the fees that exit the pool.
func (c SwapComputation) AskOutflow() math.Int {
	return c.ReturnAmount.Add(c.ProtocolFeeAmount).Add(c.BurnFeeAmount)
}

// OfferComputation is the outcome of pricing a desired return against a pool.
type OfferComputation struct {
	OfferAmount       math.Int `json:"offer_amount"`
	SpreadAmount      math.Int `json:"spread_amount"`
	SwapFeeAmount     math.Int `json:"swap_fee_amount"`
	ProtocolFeeAmount math.Int `json:"protocol_fee_amount"`
	BurnFeeAmount     math.Int `json:"burn_fee_amount"`
}

// LiquidityComputation is the outcome of pricing a deposit.
type LiquidityComputation struct {
	// AcceptedAmounts is the part of each deposit that was priced into shares.
	AcceptedAmounts [2]math.Int `json:"accepted_amounts"`
	MintedShares    math.Int    `json:"minted_shares"`
	// LockedShares is non-zero only on the first deposit.
	LockedShares math.Int `json:"locked_shares"`
}
