package types

// Event types for the pool manager module
const (
	EventTypeCreatePool        = "create_pool"
	EventTypeUpdatePoolFees    = "update_pool_fees"
	EventTypeSwap              = "swap"
	EventTypeProvideLiquidity  = "provide_liquidity"
	EventTypeWithdrawLiquidity = "withdraw_liquidity"
	EventTypeFlashLoanBegin    = "flash_loan_begin"
	EventTypeFlashLoanComplete = "flash_loan_complete"
)

// Event attribute keys
const (
	AttributeKeyPoolIdentifier = "pool_identifier"
	AttributeKeySender         = "sender"
	AttributeKeyReceiver       = "receiver"
	AttributeKeyOfferAsset     = "offer_asset"
	AttributeKeyReturnAsset    = "return_asset"
	AttributeKeySpreadAmount   = "spread_amount"
	AttributeKeySwapFee        = "swap_fee"
	AttributeKeyProtocolFee    = "protocol_fee"
	AttributeKeyBurnFee        = "burn_fee"
	AttributeKeyAssets         = "assets"
	AttributeKeyShares         = "shares"
	AttributeKeyLockedShares   = "locked_shares"
	AttributeKeyLoanID         = "loan_id"
	AttributeKeyLoanFee        = "loan_fee"
	AttributeKeyPoolType       = "pool_type"
)
