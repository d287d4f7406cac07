package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/config"
	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/olric"
)

// Backend names, as used in persistence.backend.
const (
	BackendFile    = config.BackendFile
	BackendSQLite  = config.BackendSQLite
	BackendLevelDB = config.BackendLevelDB
	BackendOlric   = config.BackendOlric
	BackendRQLite  = config.BackendRQLite
	BackendMemory  = config.BackendMemory
)

// DefaultKey names the snapshot in keyed backends when none is configured.
const DefaultKey = "wallet_state"

// Open builds the SnapshotStore selected by cfg.
func Open(ctx context.Context, cfg config.PersistenceConfig, logger *zap.Logger) (contracts.SnapshotStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil

	case "", BackendFile, BackendSQLite, BackendLevelDB:
		path, err := cfg.SnapshotPath()
		if err != nil {
			return nil, errors.NewStorageError(cfg.Backend, "failed to resolve snapshot path", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, errors.NewStorageError(cfg.Backend, "failed to create snapshot directory", err)
		}
		logger.Debug("Opening local snapshot store",
			zap.String("backend", cfg.Backend), zap.String("path", path))

		switch cfg.Backend {
		case BackendSQLite:
			store, err := OpenSQLite(path, key)
			if err != nil {
				return nil, err
			}
			return store, nil
		case BackendLevelDB:
			store, err := OpenLevelDB(path, key)
			if err != nil {
				return nil, err
			}
			return store, nil
		default:
			return NewFileStore(path), nil
		}

	case BackendOlric:
		client, err := olric.NewClient(olric.Config{
			Servers: cfg.OlricServers,
			DMap:    cfg.OlricDMap,
			Timeout: cfg.OlricTimeout,
		}, logger)
		if err != nil {
			return nil, errors.NewStorageError(BackendOlric, "failed to connect to olric", err)
		}
		if err := client.Health(ctx); err != nil {
			_ = client.Close(ctx)
			return nil, errors.NewStorageError(BackendOlric, "olric cluster is not healthy", err)
		}
		return NewOlricStore(client, key), nil

	case BackendRQLite:
		logger.Debug("Connecting to rqlite", zap.String("url", cfg.RQLiteURL))
		store, err := OpenRQLite(ctx, cfg.RQLiteURL, key)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, errors.NewValidationError("persistence.backend",
			fmt.Sprintf("unknown backend %q", cfg.Backend), cfg.Backend)
	}
}
