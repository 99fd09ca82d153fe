package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/paw-chain/liquidityhub/x/poolmanager/client/cli"
)

// Execute runs the command tree with args and releases the store however the command ends.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	rootCmd, closeApp := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, closeApp())
}

// NewRootCmd creates the liquidityhubd command tree. The returned func closes the store
// opened by whichever command ran.
func NewRootCmd() (*cobra.Command, func() error) {
	var app *App
	closeApp := func() error {
		if app == nil {
			return nil
		}
		err := app.Close()
		app = nil
		return err
	}

	rootCmd := &cobra.Command{
		Use:   "liquidityhubd",
		Short: "Two-asset liquidity pool manager",
		Long: `liquidityhubd keeps constant product and StableSwap pools in a local store.
It prices swaps, accounts for liquidity shares and reports every result as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			cfg, err := LoadConfig(home, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			app, err = OpenApp(cfg, logger)
			if err != nil {
				return err
			}
			cmd.SetContext(cli.WithBackend(cmd.Context(), app))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "log level, e.g. info or poolmanager:debug,*:error")
	rootCmd.PersistentFlags().String(flagLogFormat, "", "log format (plain|json)")
	rootCmd.PersistentFlags().String(flagStoreBackend, "", "database backend (goleveldb|memdb)")

	rootCmd.AddCommand(
		cli.GetTxCmd(),
		cli.GetQueryCmd(),
		ServeMetricsCmd(),
	)

	return rootCmd, closeApp
}

// NewLogger builds the root logger from the configured level and format.
func NewLogger(cfg Config, w io.Writer) (log.Logger, error) {
	filter, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	opts := []log.Option{log.FilterOption(filter)}
	switch cfg.LogFormat {
	case "json":
		opts = append(opts, log.OutputJSONOption())
	case "plain", "":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	if w == nil {
		w = os.Stderr
	}
	return log.NewLogger(w, opts...), nil
}

func appFromCmd(cmd *cobra.Command) (*App, error) {
	b, err := cli.GetBackend(cmd)
	if err != nil {
		return nil, err
	}
	app, ok := b.(*App)
	if !ok {
		return nil, fmt.Errorf("unexpected backend %T", b)
	}
	return app, nil
}
