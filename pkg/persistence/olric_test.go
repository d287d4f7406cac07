package persistence

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/olric"
)

type fakeDMap struct {
	values map[string][]byte
	err    error
	closed bool
}

func newFakeDMap() *fakeDMap {
	return &fakeDMap{values: make(map[string][]byte)}
}

func (f *fakeDMap) Put(ctx context.Context, key string, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeDMap) Get(ctx context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.values[key]
	if !ok {
		return nil, olric.ErrKeyNotFound
	}
	return value, nil
}

func (f *fakeDMap) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

func TestOlricStore(t *testing.T) {
	ctx := context.Background()
	dmap := newFakeDMap()
	store := &OlricStore{client: dmap, key: "wallet:alice"}

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, store.Save(ctx, sampleDocument(4)))
	assert.Contains(t, dmap.values, "wallet:alice")

	doc, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, sampleDocument(4), *doc)

	require.NoError(t, store.Close())
	assert.True(t, dmap.closed)
}

func TestOlricStoreErrors(t *testing.T) {
	ctx := context.Background()
	dmap := newFakeDMap()
	dmap.err = stderrors.New("connection refused")
	store := &OlricStore{client: dmap, key: DefaultKey}

	err := store.Save(ctx, sampleDocument(1))
	require.Error(t, err)
	assert.True(t, errors.IsStorage(err))

	_, err = store.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsStorage(err))
}
