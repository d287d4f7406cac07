package persistence

import (
	"context"
	"errors"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	werrors "github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/olric"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// blobStore is the part of the Olric client the snapshot store needs.
type blobStore interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Close(ctx context.Context) error
}

var _ blobStore = (*olric.Client)(nil)

// OlricStore keeps the snapshot in an Olric DMap so several devices can
// share one wallet state.
type OlricStore struct {
	client blobStore
	key    string
}

var _ contracts.SnapshotStore = (*OlricStore)(nil)

// NewOlricStore stores snapshots under key through client.
func NewOlricStore(client *olric.Client, key string) *OlricStore {
	return &OlricStore{client: client, key: key}
}

func (s *OlricStore) Load(ctx context.Context) (*state.Document, error) {
	value, err := s.client.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, olric.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, werrors.NewStorageError(BackendOlric, "failed to load snapshot", err)
	}
	return decodeDocument(BackendOlric, value)
}

func (s *OlricStore) Save(ctx context.Context, doc state.Document) error {
	data, err := encodeDocument(BackendOlric, doc)
	if err != nil {
		return err
	}
	if err := s.client.Put(ctx, s.key, data); err != nil {
		return werrors.NewStorageError(BackendOlric, "failed to save snapshot", err)
	}
	return nil
}

func (s *OlricStore) Close() error {
	return s.client.Close(context.Background())
}
