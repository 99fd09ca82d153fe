package types

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "poolmanager"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// MinimumLiquidityAmount is the number of shares locked forever on the first deposit.
	MinimumLiquidityAmount = 1000

	// LockedLiquidityHolder owns the shares minted on bootstrap. It can never withdraw.
	LockedLiquidityHolder = "poolmanager/locked"

	// MaxReserveBits is the width every reserve and computed amount must fit in.
	MaxReserveBits = 128

	// MaxDecimals bounds the decimal precision a reserve may declare.
	MaxDecimals = 18
)

// Store key prefixes
var (
	PoolKeyPrefix         = []byte{0x01} // pool records
	ShareBalanceKeyPrefix = []byte{0x02} // per-holder share balances
	TotalSharesKeyPrefix  = []byte{0x03} // per-pool share supply
	PendingLoanKeyPrefix  = []byte{0x04} // in-flight flash loans
	ParamsKey             = []byte{0x05}
)

// PoolKey returns the store key for a pool
func PoolKey(poolID string) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), []byte(poolID)...)
}

// ShareBalancePrefix returns the prefix under which every holder balance of a pool lives.
func ShareBalancePrefix(poolID string) []byte {
	return append(append([]byte{}, ShareBalanceKeyPrefix...), address.MustLengthPrefix([]byte(poolID))...)
}

// ShareBalanceKey returns the store key for a holder's share balance in a pool
func ShareBalanceKey(poolID, holder string) []byte {
	return append(ShareBalancePrefix(poolID), []byte(holder)...)
}

// TotalSharesKey returns the store key for a pool's share supply
func TotalSharesKey(poolID string) []byte {
	return append(append([]byte{}, TotalSharesKeyPrefix...), []byte(poolID)...)
}

// PendingLoanKey returns the store key for the flash loan marker of a pool
func PendingLoanKey(poolID string) []byte {
	return append(append([]byte{}, PendingLoanKeyPrefix...), []byte(poolID)...)
}
