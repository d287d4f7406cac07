// Package persistence snapshots the wallet state to durable storage and
// restores it on start-up.
package persistence

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/logging"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// DefaultSaveTimeout bounds a single snapshot write.
const DefaultSaveTimeout = 10 * time.Second

// Hook binds a SnapshotStore to a state.Store: Restore loads the last
// snapshot, and after Start every change to the persisted state is saved.
type Hook struct {
	store       *state.Store
	snapshots   contracts.SnapshotStore
	logger      *logging.ColoredLogger
	saveTimeout time.Duration

	mu          sync.Mutex
	lastSaved   uint64
	lastErr     error
	unsubscribe func()
}

// NewHook creates a hook. A nil logger is replaced with a no-op logger.
func NewHook(store *state.Store, snapshots contracts.SnapshotStore, logger *zap.Logger) *Hook {
	return &Hook{
		store:       store,
		snapshots:   snapshots,
		logger:      logging.Wrap(logger),
		saveTimeout: DefaultSaveTimeout,
	}
}

// Restore loads the last snapshot into the store. It must run before any
// workflow touches the store. An empty backend leaves the store unchanged.
func (h *Hook) Restore(ctx context.Context) error {
	doc, err := h.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		h.logger.ComponentDebug(logging.ComponentStorage, "No snapshot to restore")
		return nil
	}
	if err := h.store.Restore(*doc); err != nil {
		return err
	}

	h.mu.Lock()
	h.lastSaved = doc.Version
	h.mu.Unlock()
	return nil
}

// Start subscribes to the store and saves every change. Calling Start twice
// has no effect.
func (h *Hook) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unsubscribe != nil {
		return
	}
	h.unsubscribe = h.store.Subscribe(h.save)
}

// Stop unsubscribes from the store.
func (h *Hook) Stop() {
	h.mu.Lock()
	unsubscribe := h.unsubscribe
	h.unsubscribe = nil
	h.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Flush saves the current document if it is newer than the last save and
// returns the error of that save.
func (h *Hook) Flush(ctx context.Context) error {
	doc := h.store.Document()

	h.mu.Lock()
	defer h.mu.Unlock()
	if doc.Version <= h.lastSaved && h.lastErr == nil {
		return nil
	}
	return h.saveLocked(ctx, doc)
}

// LastError returns the error of the most recent save, if it failed.
func (h *Hook) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// save runs on the mutating goroutine. Saves are serialized and a document
// older than the last saved one is dropped.
func (h *Hook) save(doc state.Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if doc.Version <= h.lastSaved {
		h.logger.ComponentDebug(logging.ComponentStorage, "Skipping stale snapshot",
			zap.Uint64("version", doc.Version), zap.Uint64("last_saved", h.lastSaved))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.saveTimeout)
	defer cancel()
	_ = h.saveLocked(ctx, doc)
}

func (h *Hook) saveLocked(ctx context.Context, doc state.Document) error {
	if err := h.snapshots.Save(ctx, doc); err != nil {
		h.lastErr = err
		h.logger.ComponentError(logging.ComponentStorage, "Failed to save snapshot",
			zap.Uint64("version", doc.Version), zap.Error(err))
		return err
	}
	h.lastErr = nil
	if doc.Version > h.lastSaved {
		h.lastSaved = doc.Version
	}
	h.logger.ComponentDebug(logging.ComponentStorage, "Snapshot saved", zap.Uint64("version", doc.Version))
	return nil
}
