package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), append([]string{"--home", home, "--log-level", "error"}, args...), &out, &errOut)
	return out.String(), err
}

func TestRoot_StatePersistsAcrossInvocations(t *testing.T) {
	home := t.TempDir()

	_, err := run(t, home, "tx", "create-pool", "uluna", "uusd", "--from", "creator")
	require.NoError(t, err)
	_, err = run(t, home, "tx", "provide-liquidity", "uluna-uusd", "1000000uluna", "1000000uusd", "--from", "alice")
	require.NoError(t, err)

	// a rejected swap leaves nothing behind
	_, err = run(t, home, "tx", "swap", "uluna-uusd", "10000uluna", "--belief-price", "1", "--max-spread", "0.01", "--from", "bob")
	require.ErrorIs(t, err, types.ErrMaxSpreadAssertion)

	_, err = run(t, home, "tx", "swap", "uluna-uusd", "10000uluna", "--from", "bob")
	require.NoError(t, err)

	out, err := run(t, home, "query", "pool", "uluna-uusd")
	require.NoError(t, err)
	var pool types.Pool
	require.NoError(t, json.Unmarshal([]byte(out), &pool))
	require.Equal(t, "1010000", pool.Reserves[0].Amount.String())
	require.Equal(t, "990129", pool.Reserves[1].Amount.String())

	out, err = run(t, home, "query", "invariants")
	require.NoError(t, err)
	require.Contains(t, out, `"broken": false`)
}

func TestRoot_ConfiguredAuthority(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
[poolmanager]
authority = "treasury"
`)

	_, err := run(t, home, "tx", "create-pool", "uluna", "uusd", "--from", "creator")
	require.NoError(t, err)

	_, err = run(t, home, "tx", "update-fees", "uluna-uusd", "--swap-fee", "0.002", "--from", "liquidityhub-authority")
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = run(t, home, "tx", "update-fees", "uluna-uusd", "--swap-fee", "0.002", "--from", "treasury")
	require.NoError(t, err)
}

func TestRoot_InvalidConfig(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
[log]
format = "xml"
`)
	_, err := run(t, home, "query", "pools")
	require.ErrorContains(t, err, "invalid log format")
}
