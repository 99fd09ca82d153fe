package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/liquidityhub/x/poolmanager/keeper"
	"github.com/paw-chain/liquidityhub/x/poolmanager/types"
)

// App owns the persistent store and the keeper that runs over it.
// Each command invocation opens the store, runs at the next height and commits at most once.
type App struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	keeper *keeper.Keeper
	ctx    sdk.Context
}

// OpenApp loads the latest committed state under <home>/data.
func OpenApp(cfg Config, logger log.Logger) (*App, error) {
	db, err := dbm.NewDB("application", cfg.StoreBackend, filepath.Join(cfg.Home, "data"))
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}

	version := cms.LastCommitID().Version
	header := cmtproto.Header{ChainID: "liquidityhub", Height: version + 1, Time: time.Now().UTC()}
	app := &App{
		logger: logger,
		db:     db,
		cms:    cms,
		keeper: keeper.NewKeeper(storeKey, cfg.Authority),
		ctx:    sdk.NewContext(cms, header, false, logger),
	}

	if version == 0 {
		gs := types.DefaultGenesis()
		gs.Params = cfg.Params()
		if err := app.keeper.InitGenesis(app.ctx, *gs); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init genesis: %w", err)
		}
	} else if err := app.keeper.SetParams(app.ctx, cfg.Params()); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("store opened", "backend", cfg.StoreBackend, "height", header.Height)
	return app, nil
}

// Context implements cli.Backend.
func (a *App) Context() sdk.Context { return a.ctx }

// Keeper implements cli.Backend.
func (a *App) Keeper() *keeper.Keeper { return a.keeper }

// Commit implements cli.Backend.
func (a *App) Commit() error {
	id := a.cms.Commit()
	a.logger.Info("state committed", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}
