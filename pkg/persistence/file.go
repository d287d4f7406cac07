package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// FileStore keeps the snapshot as a JSON file.
type FileStore struct {
	path string
}

var _ contracts.SnapshotStore = (*FileStore)(nil)

// NewFileStore creates a store writing to path. The parent directory is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file location.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) (*state.Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageError(BackendFile, fmt.Sprintf("failed to read %s", f.path), err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decodeDocument(BackendFile, data)
}

// Save writes the snapshot atomically: a temp file in the same directory is
// renamed over the target.
func (f *FileStore) Save(ctx context.Context, doc state.Document) error {
	data, err := encodeDocument(BackendFile, doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewStorageError(BackendFile, fmt.Sprintf("failed to create %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.NewStorageError(BackendFile, "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewStorageError(BackendFile, "failed to write snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError(BackendFile, "failed to close snapshot", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return errors.NewStorageError(BackendFile, fmt.Sprintf("failed to replace %s", f.path), err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
