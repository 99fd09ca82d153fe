package types

import (
	"fmt"
	"regexp"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolType selects the pricing curve of a pool.
type PoolType string

const (
	PoolTypeConstantProduct PoolType = "constant_product"
	PoolTypeStableSwap      PoolType = "stable_swap"
)

// MaxAmplification bounds the StableSwap amplification coefficient.
const MaxAmplification = 1_000_000

var poolIdentifierRegex = regexp.MustCompile(`^[a-zA-Z0-9./_-]{1,64}$`)

// Validate rejects unknown pool types.
func (t PoolType) Validate() error {
	switch t {
	case PoolTypeConstantProduct, PoolTypeStableSwap:
		return nil
	default:
		return errorsmod.Wrapf(ErrInvalidPoolType, "%q", string(t))
	}
}

// ValidatePoolIdentifier checks an identifier is usable as a store key suffix.
func ValidatePoolIdentifier(id string) error {
	if !poolIdentifierRegex.MatchString(id) {
		return errorsmod.Wrapf(ErrInvalidPoolIdentifier, "%q", id)
	}
	return nil
}

// DefaultPoolIdentifier derives an identifier from the two denominations.
func DefaultPoolIdentifier(denom0, denom1 string) string {
	return fmt.Sprintf("%s-%s", denom0, denom1)
}

// Reserve is one side of a pool.
type Reserve struct {
	Denom    string   `json:"denom"`
	Amount   math.Int `json:"amount"`
	Decimals uint32   `json:"decimals"`
}

// Validate checks the denomination, width and decimal precision of a reserve.
func (r Reserve) Validate() error {
	if err := sdk.ValidateDenom(r.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidDenom, err.Error())
	}
	if r.Decimals > MaxDecimals {
		return errorsmod.Wrapf(ErrInvalidDecimals, "%s declares %d decimals, max %d", r.Denom, r.Decimals, MaxDecimals)
	}
	return ValidateWidth(r.Denom+" reserve", r.Amount)
}

// Coin returns the reserve as a coin.
func (r Reserve) Coin() sdk.Coin {
	return sdk.NewCoin(r.Denom, r.Amount)
}

// Pool is a two-asset liquidity pool.
type Pool struct {
	Identifier string     `json:"identifier"`
	Reserves   [2]Reserve `json:"reserves"`
	Fees       PoolFees   `json:"fees"`
	PoolType   PoolType   `json:"pool_type"`
	// Amplification is only meaningful for StableSwap pools.
	Amplification uint64 `json:"amplification,omitempty"`
}

// NewPool returns an empty pool over the two assets.
func NewPool(id string, denom0 string, decimals0 uint32, denom1 string, decimals1 uint32, fees PoolFees, poolType PoolType, amp uint64) Pool {
	return Pool{
		Identifier: id,
		Reserves: [2]Reserve{
			{Denom: denom0, Amount: math.ZeroInt(), Decimals: decimals0},
			{Denom: denom1, Amount: math.ZeroInt(), Decimals: decimals1},
		},
		Fees:          fees,
		PoolType:      poolType,
		Amplification: amp,
	}
}

// Validate checks every structural invariant of a pool.
func (p Pool) Validate() error {
	if err := ValidatePoolIdentifier(p.Identifier); err != nil {
		return err
	}
	for _, r := range p.Reserves {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if p.Reserves[0].Denom == p.Reserves[1].Denom {
		return errorsmod.Wrapf(ErrInvalidDenom, "pool %s lists %s twice", p.Identifier, p.Reserves[0].Denom)
	}
	if err := p.Fees.Validate(); err != nil {
		return err
	}
	if err := p.PoolType.Validate(); err != nil {
		return err
	}
	if p.PoolType == PoolTypeStableSwap && (p.Amplification == 0 || p.Amplification > MaxAmplification) {
		return errorsmod.Wrapf(ErrInvalidPoolType, "amplification %d outside [1, %d]", p.Amplification, MaxAmplification)
	}
	return nil
}

// ReserveIndex returns the position of denom in the pool.
func (p Pool) ReserveIndex(denom string) (int, bool) {
	for i, r := range p.Reserves {
		if r.Denom == denom {
			return i, true
		}
	}
	return -1, false
}

// OfferAsk resolves the offer and ask sides for an offered denomination.
func (p Pool) OfferAsk(offerDenom string) (offer, ask int, err error) {
	offer, ok := p.ReserveIndex(offerDenom)
	if !ok {
		return 0, 0, errorsmod.Wrapf(ErrAssetMismatch, "%s is not traded by pool %s", offerDenom, p.Identifier)
	}
	return offer, 1 - offer, nil
}

// Amounts returns both reserve amounts in pool order.
func (p Pool) Amounts() [2]math.Int {
	return [2]math.Int{p.Reserves[0].Amount, p.Reserves[1].Amount}
}

// Decimals returns both decimal precisions in pool order.
func (p Pool) Decimals() [2]uint32 {
	return [2]uint32{p.Reserves[0].Decimals, p.Reserves[1].Decimals}
}

// Denoms returns both denominations in pool order.
func (p Pool) Denoms() [2]string {
	return [2]string{p.Reserves[0].Denom, p.Reserves[1].Denom}
}

// ValidateWidth checks an amount is non-negative and fits MaxReserveBits.
func ValidateWidth(name string, amount math.Int) error {
	if amount.IsNil() {
		return errorsmod.Wrapf(ErrOverflow, "%s is nil", name)
	}
	if amount.IsNegative() {
		return errorsmod.Wrapf(ErrOverflow, "%s is negative: %s", name, amount)
	}
	if amount.BigInt().BitLen() > MaxReserveBits {
		return errorsmod.Wrapf(ErrOverflow, "%s exceeds %d bits: %s", name, MaxReserveBits, amount)
	}
	return nil
}
