package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore keeps the snapshot in a single row of a local SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

var _ contracts.SnapshotStore = (*SQLiteStore)(nil)

// OpenSQLite creates or opens a SQLite database at path and applies the
// snapshot schema.
func OpenSQLite(path, key string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.NewStorageError(BackendSQLite, "failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewStorageError(BackendSQLite, "failed to connect to database", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError(BackendSQLite, "failed to apply pragmas", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.NewStorageError(BackendSQLite, "failed to apply schema", err)
	}

	return &SQLiteStore{db: db, key: key}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*state.Document, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE key = ?`, s.key).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewStorageError(BackendSQLite, "failed to load snapshot", err)
	}
	return decodeDocument(BackendSQLite, []byte(document))
}

func (s *SQLiteStore) Save(ctx context.Context, doc state.Document) error {
	data, err := encodeDocument(BackendSQLite, doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, version, document, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		s.key, int64(doc.Version), string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return errors.NewStorageError(BackendSQLite, "failed to save snapshot", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
