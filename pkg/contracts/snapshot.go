package contracts

import (
	"context"

	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// SnapshotStore persists the wallet state document.
// Implementations exist for a JSON file, SQLite, LevelDB, Olric and RQLite.
type SnapshotStore interface {
	// Load returns the last saved document, or nil and no error when
	// nothing has been saved yet.
	Load(ctx context.Context) (*state.Document, error)

	// Save replaces the stored document.
	Save(ctx context.Context, doc state.Document) error

	// Close releases the backend's resources.
	Close() error
}
