package cli

// Flag constants for pool manager CLI commands
const (
	FlagFrom = "from"

	// Pool creation flags
	FlagPoolID        = "pool-id"
	FlagDecimals      = "decimals"
	FlagPoolType      = "pool-type"
	FlagAmplification = "amplification"
	FlagSwapFee       = "swap-fee"
	FlagProtocolFee   = "protocol-fee"
	FlagBurnFee       = "burn-fee"

	// Swap flags
	FlagBeliefPrice = "belief-price"
	FlagMaxSpread   = "max-spread"

	// Liquidity flags
	FlagSlippageTolerance = "slippage-tolerance"
	FlagReceiver          = "receiver"
)
