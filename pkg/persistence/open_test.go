package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/walletsync/pkg/config"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.PersistenceConfig
		want interface{}
	}{
		{"memory", config.PersistenceConfig{Backend: BackendMemory}, &MemoryStore{}},
		{"file", config.PersistenceConfig{Backend: BackendFile, Path: filepath.Join(dir, "a", "state.json")}, &FileStore{}},
		{"sqlite", config.PersistenceConfig{Backend: BackendSQLite, Path: filepath.Join(dir, "b", "state.db")}, &SQLiteStore{}},
		{"leveldb", config.PersistenceConfig{Backend: BackendLevelDB, Path: filepath.Join(dir, "c", "state.ldb")}, &LevelDBStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), tt.cfg, nil)
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}
}

func TestOpenDefaultsToFileInConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLETSYNC_HOME", dir)

	store, err := Open(context.Background(), config.PersistenceConfig{}, nil)
	require.NoError(t, err)
	fs, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "state.json"), fs.Path())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.PersistenceConfig{Backend: "etcd"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
