// Package cli implements the walletctl commands. Every invocation builds an
// App: it restores the wallet state from the configured backend, connects
// the wallet, runs one command and persists what changed.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/client"
	"github.com/DeBrosOfficial/walletsync/pkg/config"
	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
	"github.com/DeBrosOfficial/walletsync/pkg/logging"
	"github.com/DeBrosOfficial/walletsync/pkg/persistence"
	"github.com/DeBrosOfficial/walletsync/pkg/provider"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// DefaultConfigName is the config file looked up in the config dir when
// no --config flag is given.
const DefaultConfigName = "walletctl.yaml"

// App is one wired walletctl session.
type App struct {
	Config   *config.Config
	Logger   *logging.ColoredLogger
	Store    *state.Store
	Provider *provider.Simulated
	Client   *client.Client
	// Registry is nil unless metrics are enabled.
	Registry *prometheus.Registry

	snapshots  contracts.SnapshotStore
	hook       *persistence.Hook
	metricsOut io.Writer
}

// AppOptions overrides where an App writes its side output.
type AppOptions struct {
	// LogOutput receives logs when logging.output_file is empty. Defaults
	// to stderr so command output stays parseable.
	LogOutput io.Writer
	// MetricsOutput receives the metrics dump when metrics.output_file is
	// empty. Defaults to stderr.
	MetricsOutput io.Writer
}

// LoadConfig reads the config at path. An empty path uses walletctl.yaml in
// the config dir and falls back to defaults when that file does not exist.
func LoadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := config.DefaultPath(DefaultConfigName)
		if err != nil {
			return nil, err
		}
		path = p
	}

	var cfg *config.Config
	if _, err := os.Stat(path); err != nil && !explicit && os.IsNotExist(err) {
		cfg = config.DefaultConfig()
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, "  - "+e.Error())
		}
		return nil, fmt.Errorf("%w:\n%s", errors.ErrInvalidConfig, strings.Join(msgs, "\n"))
	}
	return cfg, nil
}

// NewApp wires the configured backend, the provider and the wallet client,
// and restores the last snapshot into the store.
func NewApp(ctx context.Context, cfg *config.Config, opts AppOptions) (*App, error) {
	logOut := opts.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}
	logger, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputFile: cfg.Logging.OutputFile,
		Colors:     opts.LogOutput == nil,
		Output:     logOut,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store := state.NewStore(provider.NormalizeMnemonic(cfg.Wallet.Mnemonic), logger.Logger)

	snapshots, err := persistence.Open(ctx, cfg.Persistence, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Persistence.Backend, err)
	}
	hook := persistence.NewHook(store, snapshots, logger.Logger)
	if err := hook.Restore(ctx); err != nil {
		snapshots.Close()
		return nil, fmt.Errorf("failed to restore wallet state: %w", err)
	}
	hook.Start()

	sim := provider.NewSimulated(provider.Options{Logger: logger.Logger})
	importLedger(sim, store, cfg.Wallet.Network, logger)

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Provider:   sim,
		snapshots:  snapshots,
		hook:       hook,
		metricsOut: opts.MetricsOutput,
	}

	var metrics *client.Metrics
	if cfg.Metrics.Enabled {
		app.Registry = prometheus.NewRegistry()
		metrics = client.NewMetrics(app.Registry)
	}

	app.Client, err = client.NewClient(&client.ClientConfig{
		Network:              cfg.Wallet.Network,
		ContractConfirmation: cfg.Sync.ContractConfirmation,
		Rehydrate:            cfg.Sync.Rehydrate,
	}, sim, store, client.WithColoredLogger(logger), client.WithMetrics(metrics))
	if err != nil {
		hook.Stop()
		snapshots.Close()
		return nil, err
	}

	return app, nil
}

// importLedger replays the restored identities into the in-process network
// so they can be used again in this session.
func importLedger(sim *provider.Simulated, store *state.Store, network string, logger *logging.ColoredLogger) {
	snap := store.Snapshot()
	var owned []identity.Identity
	for _, list := range snap.IdentityLists() {
		owned = append(owned, list.Items...)
	}
	if len(owned) == 0 {
		return
	}
	if err := sim.Import(snap.Mnemonic, network, owned, snap.Names); err != nil {
		logger.ComponentWarn(logging.ComponentCLI, "Could not import restored identities", zap.Error(err))
	}
}

// Sync runs InitWallet and returns the error it recorded, if any.
func (a *App) Sync(ctx context.Context) error {
	a.Client.InitWallet(ctx)
	return a.Store.ErrorDetails()
}

// Close disconnects the wallet, writes the final snapshot and dumps metrics.
// The first error is returned; later steps still run.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(a.Client.Close())
	keep(a.hook.Flush(ctx))
	a.hook.Stop()
	keep(a.snapshots.Close())
	if a.Registry != nil {
		keep(dumpMetrics(a.Registry, a.Config.Metrics.OutputFile, a.metricsOut))
	}
	_ = a.Logger.Sync()
	return firstErr
}
