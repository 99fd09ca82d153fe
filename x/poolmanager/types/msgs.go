package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const maxHolderLength = 255

// ValidateHolder checks an account name able to hold shares.
func ValidateHolder(holder string) error {
	if holder == "" || len(holder) > maxHolderLength {
		return errorsmod.Wrapf(ErrInvalidAddress, "holder %q must be 1-%d bytes", holder, maxHolderLength)
	}
	if holder == LockedLiquidityHolder {
		return errorsmod.Wrap(ErrInvalidAddress, "the locked liquidity holder cannot act")
	}
	return nil
}

func validatePositiveCoin(name string, coin sdk.Coin) error {
	if err := sdk.ValidateDenom(coin.Denom); err != nil {
		return errorsmod.Wrapf(ErrInvalidDenom, "%s: %s", name, err)
	}
	if coin.Amount.IsNil() || !coin.Amount.IsPositive() {
		return errorsmod.Wrapf(ErrZeroAmount, "%s: %s", name, coin)
	}
	return ValidateWidth(name, coin.Amount)
}

func validateFraction(err *errorsmod.Error, name string, d *math.LegacyDec) error {
	if d == nil {
		return nil
	}
	if d.IsNil() || d.IsNegative() || d.GT(math.LegacyOneDec()) {
		return errorsmod.Wrapf(err, "%s %v", name, d)
	}
	return nil
}

// MsgSwap offers one pool asset in exchange for the other.
type MsgSwap struct {
	Sender         string          `json:"sender"`
	PoolIdentifier string          `json:"pool_identifier"`
	OfferAsset     sdk.Coin        `json:"offer_asset"`
	BeliefPrice    *math.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread      *math.LegacyDec `json:"max_spread,omitempty"`
}

// ValidateBasic performs stateless checks.
func (msg MsgSwap) ValidateBasic() error {
	if err := ValidateHolder(msg.Sender); err != nil {
		return err
	}
	if err := ValidatePoolIdentifier(msg.PoolIdentifier); err != nil {
		return err
	}
	if err := validatePositiveCoin("offer asset", msg.OfferAsset); err != nil {
		return err
	}
	if msg.BeliefPrice != nil && (msg.BeliefPrice.IsNil() || !msg.BeliefPrice.IsPositive()) {
		return errorsmod.Wrapf(ErrInvalidBeliefPrice, "%v", msg.BeliefPrice)
	}
	return validateFraction(ErrInvalidMaxSpread, "max spread", msg.MaxSpread)
}

// MsgProvideLiquidity deposits both pool assets in exchange for shares.
type MsgProvideLiquidity struct {
	Sender            string          `json:"sender"`
	PoolIdentifier    string          `json:"pool_identifier"`
	Assets            [2]sdk.Coin     `json:"assets"`
	SlippageTolerance *math.LegacyDec `json:"slippage_tolerance,omitempty"`
	// Receiver gets the minted shares; the sender when empty.
	Receiver string `json:"receiver,omitempty"`
}

// ValidateBasic performs stateless checks.
func (msg MsgProvideLiquidity) ValidateBasic() error {
	if err := ValidateHolder(msg.Sender); err != nil {
		return err
	}
	if msg.Receiver != "" {
		if err := ValidateHolder(msg.Receiver); err != nil {
			return err
		}
	}
	if err := ValidatePoolIdentifier(msg.PoolIdentifier); err != nil {
		return err
	}
	for _, asset := range msg.Assets {
		if err := validatePositiveCoin("deposit", asset); err != nil {
			return err
		}
	}
	if msg.Assets[0].Denom == msg.Assets[1].Denom {
		return errorsmod.Wrapf(ErrAssetMismatch, "both deposits are %s", msg.Assets[0].Denom)
	}
	return validateFraction(ErrInvalidSlippageTolerance, "slippage tolerance", msg.SlippageTolerance)
}

// ShareReceiver returns who is credited the minted shares.
func (msg MsgProvideLiquidity) ShareReceiver() string {
	if msg.Receiver == "" {
		return msg.Sender
	}
	return msg.Receiver
}

// MsgWithdrawLiquidity burns shares for the proportional part of both reserves.
type MsgWithdrawLiquidity struct {
	Sender         string   `json:"sender"`
	PoolIdentifier string   `json:"pool_identifier"`
	Shares         math.Int `json:"shares"`
}

// ValidateBasic performs stateless checks.
func (msg MsgWithdrawLiquidity) ValidateBasic() error {
	if err := ValidateHolder(msg.Sender); err != nil {
		return err
	}
	if err := ValidatePoolIdentifier(msg.PoolIdentifier); err != nil {
		return err
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return errorsmod.Wrapf(ErrZeroAmount, "shares: %v", msg.Shares)
	}
	return ValidateWidth("shares", msg.Shares)
}

// MsgCreatePool registers a new empty pool.
type MsgCreatePool struct {
	Creator string `json:"creator"`
	// PoolIdentifier defaults to DefaultPoolIdentifier when empty.
	PoolIdentifier string    `json:"pool_identifier,omitempty"`
	Denoms         [2]string `json:"denoms"`
	Decimals       [2]uint32 `json:"decimals"`
	Fees           PoolFees  `json:"fees"`
	PoolType       PoolType  `json:"pool_type"`
	Amplification  uint64    `json:"amplification,omitempty"`
}

// Pool builds the pool the message describes.
func (msg MsgCreatePool) Pool() Pool {
	id := msg.PoolIdentifier
	if id == "" {
		id = DefaultPoolIdentifier(msg.Denoms[0], msg.Denoms[1])
	}
	return NewPool(id, msg.Denoms[0], msg.Decimals[0], msg.Denoms[1], msg.Decimals[1], msg.Fees, msg.PoolType, msg.Amplification)
}

// ValidateBasic performs stateless checks.
func (msg MsgCreatePool) ValidateBasic() error {
	if err := ValidateHolder(msg.Creator); err != nil {
		return err
	}
	return msg.Pool().Validate()
}

// MsgUpdatePoolFees replaces the fees of a pool. Only the authority may send it.
type MsgUpdatePoolFees struct {
	Authority      string   `json:"authority"`
	PoolIdentifier string   `json:"pool_identifier"`
	Fees           PoolFees `json:"fees"`
}

// ValidateBasic performs stateless checks.
func (msg MsgUpdatePoolFees) ValidateBasic() error {
	if msg.Authority == "" {
		return errorsmod.Wrap(ErrInvalidAddress, "authority cannot be empty")
	}
	if err := ValidatePoolIdentifier(msg.PoolIdentifier); err != nil {
		return err
	}
	return msg.Fees.Validate()
}

// MsgFlashLoan borrows one pool asset for the duration of a callback.
type MsgFlashLoan struct {
	Borrower       string   `json:"borrower"`
	PoolIdentifier string   `json:"pool_identifier"`
	Asset          sdk.Coin `json:"asset"`
}

// ValidateBasic performs stateless checks.
func (msg MsgFlashLoan) ValidateBasic() error {
	if err := ValidateHolder(msg.Borrower); err != nil {
		return err
	}
	if err := ValidatePoolIdentifier(msg.PoolIdentifier); err != nil {
		return err
	}
	return validatePositiveCoin("loan asset", msg.Asset)
}
