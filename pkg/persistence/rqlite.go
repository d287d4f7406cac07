package persistence

import (
	"context"
	"time"

	"github.com/rqlite/gorqlite"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// RQLiteStore keeps the snapshot in a replicated rqlite table.
type RQLiteStore struct {
	conn *gorqlite.Connection
	key  string
}

var _ contracts.SnapshotStore = (*RQLiteStore)(nil)

// OpenRQLite connects to the rqlite cluster at url and creates the snapshot
// table if needed.
func OpenRQLite(ctx context.Context, url, key string) (*RQLiteStore, error) {
	conn, err := gorqlite.Open(url)
	if err != nil {
		return nil, errors.NewStorageError(BackendRQLite, "failed to connect to rqlite", err)
	}

	_, err = conn.WriteOneParameterizedContext(ctx, gorqlite.ParameterizedStatement{
		Query: schemaSQL,
	})
	if err != nil {
		conn.Close()
		return nil, errors.NewStorageError(BackendRQLite, "failed to apply schema", err)
	}

	return &RQLiteStore{conn: conn, key: key}, nil
}

func (s *RQLiteStore) Load(ctx context.Context) (*state.Document, error) {
	rows, err := s.conn.QueryOneParameterizedContext(ctx, gorqlite.ParameterizedStatement{
		Query:     "SELECT document FROM snapshots WHERE key = ?",
		Arguments: []interface{}{s.key},
	})
	if err != nil {
		return nil, errors.NewStorageError(BackendRQLite, "failed to load snapshot", err)
	}
	if !rows.Next() {
		return nil, nil
	}

	var document string
	if err := rows.Scan(&document); err != nil {
		return nil, errors.NewStorageError(BackendRQLite, "failed to scan snapshot", err)
	}
	return decodeDocument(BackendRQLite, []byte(document))
}

func (s *RQLiteStore) Save(ctx context.Context, doc state.Document) error {
	data, err := encodeDocument(BackendRQLite, doc)
	if err != nil {
		return err
	}

	_, err = s.conn.WriteOneParameterizedContext(ctx, gorqlite.ParameterizedStatement{
		Query: `INSERT INTO snapshots (key, version, document, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				version = excluded.version,
				document = excluded.document,
				updated_at = excluded.updated_at`,
		Arguments: []interface{}{s.key, int64(doc.Version), string(data), time.Now().UTC().Format(time.RFC3339Nano)},
	})
	if err != nil {
		return errors.NewStorageError(BackendRQLite, "failed to save snapshot", err)
	}
	return nil
}

func (s *RQLiteStore) Close() error {
	s.conn.Close()
	return nil
}
