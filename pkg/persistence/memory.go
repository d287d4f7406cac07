package persistence

import (
	"context"
	"sync"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// MemoryStore keeps the encoded snapshot in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

var _ contracts.SnapshotStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*state.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return decodeDocument(BackendMemory, m.data)
}

func (m *MemoryStore) Save(ctx context.Context, doc state.Document) error {
	data, err := encodeDocument(BackendMemory, doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// Saves returns how many snapshots were written.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) Close() error { return nil }
