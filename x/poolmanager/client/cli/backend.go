package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/liquidityhub/x/poolmanager/keeper"
)

// Backend is the state the commands run against.
type Backend interface {
	// Context returns the context every keeper call in the command shares.
	Context() sdk.Context
	Keeper() *keeper.Keeper
	// Commit persists the writes made through Context.
	Commit() error
}

type backendKey struct{}

// WithBackend attaches a backend to a command context.
func WithBackend(ctx context.Context, b Backend) context.Context {
	return context.WithValue(ctx, backendKey{}, b)
}

// GetBackend returns the backend attached to the command context.
func GetBackend(cmd *cobra.Command) (Backend, error) {
	if ctx := cmd.Context(); ctx != nil {
		if b, ok := ctx.Value(backendKey{}).(Backend); ok && b != nil {
			return b, nil
		}
	}
	return nil, errors.New("pool manager backend is not initialized")
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

// decFlag reads an optional decimal flag; an empty value means unset.
func decFlag(cmd *cobra.Command, name string) (*math.LegacyDec, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	d, err := math.LegacyNewDecFromStr(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &d, nil
}
