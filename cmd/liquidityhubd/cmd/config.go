package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. LIQUIDITYHUB_LOG_LEVEL.
	EnvPrefix = "LIQUIDITYHUB"

	keyStoreBackend     = "store.backend"
	keyLogLevel         = "log.level"
	keyLogFormat        = "log.format"
	keyAuthority        = "poolmanager.authority"
	keyFlashLoanEnabled = "poolmanager.flash-loan-enabled"
	keyFlashLoanFee     = "poolmanager.flash-loan-fee"

	flagHome         = "home"
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
	flagStoreBackend = "store-backend"
)

// DefaultHome is where state and configuration live unless --home says otherwise.
var DefaultHome = defaultHome()

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".liquidityhub"
	}
	return filepath.Join(dir, ".liquidityhub")
}

// Config is the resolved configuration of the daemon.
type Config struct {
	Home             string
	StoreBackend     dbm.BackendType
	LogLevel         string
	LogFormat        string
	Authority        string
	FlashLoanEnabled bool
	FlashLoanFee     math.LegacyDec
}

// ConfigPath returns the TOML file read for a home directory.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", "app.toml")
}

// Params returns the module parameters the configuration asks for.
func (c Config) Params() types.Params {
	return types.Params{FlashLoanEnabled: c.FlashLoanEnabled, FlashLoanFee: c.FlashLoanFee}
}

func setDefaults(v *viper.Viper) {
	defaults := types.DefaultParams()
	v.SetDefault(keyStoreBackend, string(dbm.GoLevelDBBackend))
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "plain")
	v.SetDefault(keyAuthority, "liquidityhub-authority")
	v.SetDefault(keyFlashLoanEnabled, defaults.FlashLoanEnabled)
	v.SetDefault(keyFlashLoanFee, defaults.FlashLoanFee.String())
}

// LoadConfig resolves the configuration for home. Precedence, highest first:
// flags, LIQUIDITYHUB_* environment, <home>/config/app.toml, defaults.
func LoadConfig(home string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := ConfigPath(home)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			keyLogLevel:     flagLogLevel,
			keyLogFormat:    flagLogFormat,
			keyStoreBackend: flagStoreBackend,
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	fee, err := math.LegacyNewDecFromStr(cast.ToString(v.Get(keyFlashLoanFee)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyFlashLoanFee, err)
	}
	enabled, err := cast.ToBoolE(v.Get(keyFlashLoanEnabled))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyFlashLoanEnabled, err)
	}

	cfg := Config{
		Home:             home,
		StoreBackend:     dbm.BackendType(cast.ToString(v.Get(keyStoreBackend))),
		LogLevel:         cast.ToString(v.Get(keyLogLevel)),
		LogFormat:        cast.ToString(v.Get(keyLogFormat)),
		Authority:        cast.ToString(v.Get(keyAuthority)),
		FlashLoanEnabled: enabled,
		FlashLoanFee:     fee,
	}
	if err := cfg.Params().Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Authority == "" {
		return Config{}, fmt.Errorf("%s cannot be empty", keyAuthority)
	}
	return cfg, nil
}
