package persistence

import (
	"context"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	werrors "github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// LevelDBStore keeps the snapshot under one key of a LevelDB database.
type LevelDBStore struct {
	db  *leveldb.DB
	key []byte
}

var _ contracts.SnapshotStore = (*LevelDBStore)(nil)

// OpenLevelDB opens or creates a LevelDB database in dir.
func OpenLevelDB(dir, key string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, werrors.NewStorageError(BackendLevelDB, "failed to open database", err)
	}
	return &LevelDBStore{db: db, key: []byte(key)}, nil
}

func (s *LevelDBStore) Load(ctx context.Context) (*state.Document, error) {
	value, err := s.db.Get(s.key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, werrors.NewStorageError(BackendLevelDB, "failed to load snapshot", err)
	}
	return decodeDocument(BackendLevelDB, value)
}

func (s *LevelDBStore) Save(ctx context.Context, doc state.Document) error {
	data, err := encodeDocument(BackendLevelDB, doc)
	if err != nil {
		return err
	}
	if err := s.db.Put(s.key, data, &opt.WriteOptions{Sync: true}); err != nil {
		return werrors.NewStorageError(BackendLevelDB, "failed to save snapshot", err)
	}
	return nil
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
