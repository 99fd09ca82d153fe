package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func decPtr(s string) *math.LegacyDec {
	d := math.LegacyMustNewDecFromStr(s)
	return &d
}

func TestMsgSwapValidateBasic(t *testing.T) {
	valid := types.MsgSwap{
		Sender:         "trader",
		PoolIdentifier: "uluna-uusd",
		OfferAsset:     sdk.NewInt64Coin("uluna", 100),
		MaxSpread:      decPtr("0.01"),
	}
	require.NoError(t, valid.ValidateBasic())

	tests := []struct {
		name   string
		mutate func(m *types.MsgSwap)
		err    error
	}{
		{"empty sender", func(m *types.MsgSwap) { m.Sender = "" }, types.ErrInvalidAddress},
		{"locked holder", func(m *types.MsgSwap) { m.Sender = types.LockedLiquidityHolder }, types.ErrInvalidAddress},
		{"zero offer", func(m *types.MsgSwap) { m.OfferAsset = sdk.NewInt64Coin("uluna", 0) }, types.ErrZeroAmount},
		{"zero belief price", func(m *types.MsgSwap) { m.BeliefPrice = decPtr("0") }, types.ErrInvalidBeliefPrice},
		{"max spread above one", func(m *types.MsgSwap) { m.MaxSpread = decPtr("1.5") }, types.ErrInvalidMaxSpread},
		{"bad pool id", func(m *types.MsgSwap) { m.PoolIdentifier = "" }, types.ErrInvalidPoolIdentifier},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := valid
			tc.mutate(&msg)
			require.ErrorIs(t, msg.ValidateBasic(), tc.err)
		})
	}
}

func TestMsgProvideLiquidityValidateBasic(t *testing.T) {
	valid := types.MsgProvideLiquidity{
		Sender:         "provider",
		PoolIdentifier: "uluna-uusd",
		Assets:         [2]sdk.Coin{sdk.NewInt64Coin("uluna", 100), sdk.NewInt64Coin("uusd", 200)},
	}
	require.NoError(t, valid.ValidateBasic())
	require.Equal(t, "provider", valid.ShareReceiver())

	withReceiver := valid
	withReceiver.Receiver = "friend"
	require.Equal(t, "friend", withReceiver.ShareReceiver())

	tolerance := valid
	tolerance.SlippageTolerance = decPtr("1.01")
	err := tolerance.ValidateBasic()
	require.ErrorIs(t, err, types.ErrInvalidSlippageTolerance)
	require.Equal(t, types.CategoryValidation, types.CategoryOf(err))

	same := valid
	same.Assets[1] = sdk.NewInt64Coin("uluna", 5)
	require.ErrorIs(t, same.ValidateBasic(), types.ErrAssetMismatch)
}

func TestMsgWithdrawLiquidityValidateBasic(t *testing.T) {
	msg := types.MsgWithdrawLiquidity{Sender: "provider", PoolIdentifier: "p", Shares: math.NewInt(1)}
	require.NoError(t, msg.ValidateBasic())

	msg.Shares = math.ZeroInt()
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrZeroAmount)
}

func TestMsgCreatePoolDefaultsIdentifier(t *testing.T) {
	msg := types.MsgCreatePool{
		Creator:  "creator",
		Denoms:   [2]string{"uluna", "uusd"},
		Decimals: [2]uint32{6, 6},
		Fees:     types.DefaultPoolFees(),
		PoolType: types.PoolTypeConstantProduct,
	}
	require.NoError(t, msg.ValidateBasic())
	require.Equal(t, "uluna-uusd", msg.Pool().Identifier)
	require.True(t, msg.Pool().Reserves[0].Amount.IsZero())
}
