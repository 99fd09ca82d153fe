package cli

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/liquidityhub/x/poolmanager/keeper"
)

// GetQueryCmd returns the read-only commands of the pool manager
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Pool manager query subcommands",
		SuggestionsMinimumDistance: 2,
	}

	queryCmd.AddCommand(
		CmdQueryPool(),
		CmdQueryPools(),
		CmdQueryShares(),
		CmdSimulateSwap(),
		CmdReverseSimulateSwap(),
		CmdCheckInvariants(),
		CmdExportGenesis(),
	)

	return queryCmd
}

// runQuery executes fn against the backend without committing.
func runQuery(cmd *cobra.Command, fn func(ctx sdk.Context, b Backend) (any, error)) error {
	b, err := GetBackend(cmd)
	if err != nil {
		return err
	}
	res, err := fn(b.Context(), b)
	if err != nil {
		return err
	}
	return printJSON(cmd, res)
}

// CmdQueryPool returns a CLI command handler for showing one pool
func CmdQueryPool() *cobra.Command {
	return &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Show a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().GetPool(ctx, args[0])
			})
		},
	}
}

// CmdQueryPools returns a CLI command handler for listing pools
func CmdQueryPools() *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "List all pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().GetAllPools(ctx)
			})
		},
	}
}

type sharesResponse struct {
	Holder string   `json:"holder"`
	Shares sdk.Coin `json:"shares"`
	Total  sdk.Coin `json:"total"`
}

// CmdQueryShares returns a CLI command handler for a holder's share balance
func CmdQueryShares() *cobra.Command {
	return &cobra.Command{
		Use:   "shares [pool-id] [holder]",
		Short: "Show the shares a holder owns in a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				shares, err := b.Keeper().GetShares(ctx, args[0], args[1])
				if err != nil {
					return nil, err
				}
				total, err := b.Keeper().GetTotalShares(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return sharesResponse{Holder: args[1], Shares: shares, Total: total}, nil
			})
		},
	}
}

// CmdSimulateSwap returns a CLI command handler for pricing an offer
func CmdSimulateSwap() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate-swap [pool-id] [offer-coin]",
		Short: "Price an offer without executing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offer, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid offer-coin: %w", err)
			}
			return runQuery(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().SimulateSwap(ctx, args[0], offer)
			})
		},
	}
}

// CmdReverseSimulateSwap returns a CLI command handler for pricing a desired return
func CmdReverseSimulateSwap() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse-simulate [pool-id] [ask-coin]",
		Short: "Price the offer needed to receive ask-coin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ask, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("invalid ask-coin: %w", err)
			}
			return runQuery(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().ReverseSimulateSwap(ctx, args[0], ask)
			})
		},
	}
}

type invariantsResponse struct {
	Broken  bool   `json:"broken"`
	Message string `json:"message"`
}

// CmdCheckInvariants returns a CLI command handler for running the module invariants
func CmdCheckInvariants() *cobra.Command {
	return &cobra.Command{
		Use:   "invariants",
		Short: "Run the pool manager invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := GetBackend(cmd)
			if err != nil {
				return err
			}
			msg, broken := keeper.AllInvariants(*b.Keeper())(b.Context())
			if err := printJSON(cmd, invariantsResponse{Broken: broken, Message: msg}); err != nil {
				return err
			}
			if broken {
				b.Keeper().Logger(b.Context()).Error("invariant broken", "msg", msg)
				return fmt.Errorf("pool manager invariant broken")
			}
			return nil
		},
	}
}

// CmdExportGenesis returns a CLI command handler for dumping the module state
func CmdExportGenesis() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the pool manager state as genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx sdk.Context, b Backend) (any, error) {
				return b.Keeper().ExportGenesis(ctx)
			})
		},
	}
}
