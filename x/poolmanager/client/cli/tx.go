package cli

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// GetTxCmd returns the state-changing commands of the pool manager
func GetTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Pool manager transaction subcommands",
		SuggestionsMinimumDistance: 2,
	}

	txCmd.AddCommand(
		CmdCreatePool(),
		CmdSwap(),
		CmdProvideLiquidity(),
		CmdWithdrawLiquidity(),
		CmdUpdateFees(),
	)

	return txCmd
}

// runTx executes fn against the backend and commits only if it succeeds.
func runTx(cmd *cobra.Command, fn func(ctx sdk.Context, b Backend) (any, error)) error {
	b, err := GetBackend(cmd)
	if err != nil {
		return err
	}
	res, err := fn(b.Context(), b)
	if err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return printJSON(cmd, res)
}

func addFromFlag(cmd *cobra.Command) {
	cmd.Flags().String(FlagFrom, "", "account the command acts for")
	_ = cmd.MarkFlagRequired(FlagFrom)
}

func feesFromFlags(cmd *cobra.Command) (types.PoolFees, error) {
	var shares [3]math.LegacyDec
	for i, name := range []string{FlagSwapFee, FlagProtocolFee, FlagBurnFee} {
		d, err := decFlag(cmd, name)
		if err != nil {
			return types.PoolFees{}, err
		}
		if d == nil {
			return types.PoolFees{}, fmt.Errorf("--%s is required", name)
		}
		shares[i] = *d
	}
	return types.NewPoolFees(shares[0], shares[1], shares[2]), nil
}

func addFeeFlags(cmd *cobra.Command) {
	defaults := types.DefaultPoolFees()
	cmd.Flags().String(FlagSwapFee, defaults.SwapFee.Share.String(), "fee share kept by the pool")
	cmd.Flags().String(FlagProtocolFee, defaults.ProtocolFee.Share.String(), "fee share paid out to the protocol")
	cmd.Flags().String(FlagBurnFee, defaults.BurnFee.Share.String(), "fee share burned")
}

// CmdCreatePool returns a CLI command handler for creating an empty pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [denom0] [denom1]",
		Short: "Create an empty two-asset pool",
		Long: `Create an empty pool trading denom0 against denom1.

Example:
  $ liquidityhubd tx create-pool uluna uusd --from creator
  $ liquidityhubd tx create-pool uusdc uusdt --pool-type stable_swap --amplification 100 --from creator`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString(FlagFrom)
			poolID, _ := cmd.Flags().GetString(FlagPoolID)
			poolType, _ := cmd.Flags().GetString(FlagPoolType)
			amp, _ := cmd.Flags().GetUint64(FlagAmplification)
			decimals, err := cmd.Flags().GetUintSlice(FlagDecimals)
			if err != nil {
				return err
			}
			if len(decimals) != 2 {
				return fmt.Errorf("--%s needs two values, got %d", FlagDecimals, len(decimals))
			}
			fees, err := feesFromFlags(cmd)
			if err != nil {
				return err
			}

			msg := types.MsgCreatePool{
				Creator:        from,
				PoolIdentifier: poolID,
				Denoms:         [2]string{args[0], args[1]},
				Decimals:       [2]uint32{uint32(decimals[0]), uint32(decimals[1])},
				Fees:           fees,
				PoolType:       types.PoolType(poolType),
				Amplification:  amp,
			}
			return runTx(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().CreatePool(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	addFeeFlags(cmd)
	cmd.Flags().String(FlagPoolID, "", "pool identifier (default <denom0>-<denom1>)")
	cmd.Flags().UintSlice(FlagDecimals, []uint{6, 6}, "decimals of denom0,denom1")
	cmd.Flags().String(FlagPoolType, string(types.PoolTypeConstantProduct), "constant_product or stable_swap")
	cmd.Flags().Uint64(FlagAmplification, 0, "amplification of a stable_swap pool")

	return cmd
}

// CmdSwap returns a CLI command handler for swapping against a pool
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [pool-id] [offer-coin]",
		Short: "Swap one pool asset for the other",
		Long: `Swap the offered coin for the other asset of the pool.

Example:
  $ liquidityhubd tx swap uluna-uusd 10000uluna --from trader
  $ liquidityhubd tx swap uluna-uusd 10000uluna --belief-price 1 --max-spread 0.02 --from trader`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString(FlagFrom)
			offer, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid offer-coin: %w", err)
			}
			belief, err := decFlag(cmd, FlagBeliefPrice)
			if err != nil {
				return err
			}
			maxSpread, err := decFlag(cmd, FlagMaxSpread)
			if err != nil {
				return err
			}

			msg := types.MsgSwap{
				Sender:         from,
				PoolIdentifier: args[0],
				OfferAsset:     offer,
				BeliefPrice:    belief,
				MaxSpread:      maxSpread,
			}
			return runTx(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().Swap(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	cmd.Flags().String(FlagBeliefPrice, "", "expected offer per unit of return")
	cmd.Flags().String(FlagMaxSpread, "", "largest acceptable spread share, e.g. 0.01")

	return cmd
}

// CmdProvideLiquidity returns a CLI command handler for depositing into a pool
func CmdProvideLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provide-liquidity [pool-id] [coin0] [coin1]",
		Short: "Deposit both pool assets for shares",
		Long: `Deposit both assets of a pool. Any part of a disproportionate deposit that is
not priced into shares stays in the pool.

Example:
  $ liquidityhubd tx provide-liquidity uluna-uusd 1000000uluna 1000000uusd --from provider
  $ liquidityhubd tx provide-liquidity uluna-uusd 5000uluna 5100uusd --slippage-tolerance 0.05 --from provider`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString(FlagFrom)
			receiver, _ := cmd.Flags().GetString(FlagReceiver)
			var assets [2]sdk.Coin
			for i, raw := range args[1:] {
				coin, err := sdk.ParseCoinNormalized(raw)
				if err != nil {
					return fmt.Errorf("invalid coin%d: %w", i, err)
				}
				assets[i] = coin
			}
			tolerance, err := decFlag(cmd, FlagSlippageTolerance)
			if err != nil {
				return err
			}

			msg := types.MsgProvideLiquidity{
				Sender:            from,
				PoolIdentifier:    args[0],
				Assets:            assets,
				SlippageTolerance: tolerance,
				Receiver:          receiver,
			}
			return runTx(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().ProvideLiquidity(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	cmd.Flags().String(FlagSlippageTolerance, "", "largest acceptable deviation from the pool ratio, e.g. 0.05")
	cmd.Flags().String(FlagReceiver, "", "account credited the shares (default --from)")

	return cmd
}

// CmdWithdrawLiquidity returns a CLI command handler for redeeming shares
func CmdWithdrawLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-liquidity [pool-id] [shares]",
		Short: "Burn shares for the proportional part of both reserves",
		Long: `Burn shares for the proportional part of both reserves.

Example:
  $ liquidityhubd tx withdraw-liquidity uluna-uusd 500000 --from provider`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString(FlagFrom)
			shares, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid shares: %s (must be integer)", args[1])
			}

			msg := types.MsgWithdrawLiquidity{
				Sender:         from,
				PoolIdentifier: args[0],
				Shares:         shares,
			}
			return runTx(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().WithdrawLiquidity(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	return cmd
}

// CmdUpdateFees returns a CLI command handler for replacing a pool's fees
func CmdUpdateFees() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-fees [pool-id]",
		Short: "Replace the fees of a pool (authority only)",
		Long: `Replace the swap, protocol and burn fee shares of a pool.

Example:
  $ liquidityhubd tx update-fees uluna-uusd --swap-fee 0.0025 --protocol-fee 0.0005 --from authority`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString(FlagFrom)
			fees, err := feesFromFlags(cmd)
			if err != nil {
				return err
			}

			msg := types.MsgUpdatePoolFees{
				Authority:      from,
				PoolIdentifier: args[0],
				Fees:           fees,
			}
			return runTx(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().UpdatePoolFees(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	addFeeFlags(cmd)
	return cmd
}
