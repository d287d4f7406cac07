package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := OpenSQLite(path, DefaultKey)
	require.NoError(t, err)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, store.Save(ctx, sampleDocument(1)))
	require.NoError(t, store.Save(ctx, sampleDocument(7)))
	require.NoError(t, store.Close())

	// Reopening sees the last upserted row.
	store, err = OpenSQLite(path, DefaultKey)
	require.NoError(t, err)
	defer store.Close()

	doc, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, sampleDocument(7), *doc)

	var rows int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := OpenSQLite(path, "first")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, sampleDocument(3)))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path, "second")
	require.NoError(t, err)
	defer second.Close()

	doc, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, doc)
}
