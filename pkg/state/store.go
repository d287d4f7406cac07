// Package state holds the wallet's single source of truth: sync status, the
// error slot, the seed phrase, and the identities with their names and
// contracts. Every write goes through a Store method.
package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
	"github.com/DeBrosOfficial/walletsync/pkg/logging"
)

// DefaultMnemonic is the demo wallet used until the user sets their own.
const DefaultMnemonic = "final vocal warm mansion person awesome sell spend solar tobacco gain canoe"

// Store is the state container. It is safe for concurrent use; each method is
// a single critical section.
type Store struct {
	mu         sync.RWMutex
	syncing    bool
	errDetails error
	mnemonic   string
	identities map[string][]identity.Identity
	names      map[string][]string
	contracts  map[string]identity.Contract
	version    uint64

	subMu   sync.Mutex
	subs    map[int]func(Document)
	nextSub int

	logger *logging.ColoredLogger
}

// NewStore creates an empty store seeded with mnemonic. A nil logger is
// replaced with a no-op logger.
func NewStore(mnemonic string, logger *zap.Logger) *Store {
	s := &Store{
		mnemonic:  mnemonic,
		names:     make(map[string][]string),
		contracts: make(map[string]identity.Contract),
		subs:      make(map[int]func(Document)),
		logger:    logging.Wrap(logger),
	}
	s.identities = emptyBuckets()
	return s
}

func emptyBuckets() map[string][]identity.Identity {
	buckets := make(map[string][]identity.Identity, len(identity.Types()))
	for _, t := range identity.Types() {
		buckets[t.Name()] = []identity.Identity{}
	}
	return buckets
}

// AddIdentity appends id to the bucket for typ. Identity ids are unique
// across all buckets; a duplicate leaves state unchanged.
func (s *Store) AddIdentity(id identity.Identity, typ identity.Type) error {
	if id.ID == "" {
		return errors.NewValidationError("id", "identity id is required", id.ID)
	}
	if typ.IsZero() {
		return errors.NewValidationError("type", "identity type is required", nil)
	}

	s.mu.Lock()
	if s.findLocked(id.ID) != nil {
		s.mu.Unlock()
		return errors.NewConflictError("identity", "id", id.ID)
	}
	id.Type = typ
	bucket := s.identities[typ.Name()]
	next := make([]identity.Identity, len(bucket), len(bucket)+1)
	copy(next, bucket)
	s.identities[typ.Name()] = append(next, id)
	doc := s.bumpLocked()
	s.mu.Unlock()

	s.logger.ComponentDebug(logging.ComponentState, "Identity added",
		zap.String("id", id.ID), zap.String("type", typ.Name()))
	s.publish(doc)
	return nil
}

// AddName appends name to the ordered list for identityID. Duplicates are kept.
func (s *Store) AddName(identityID, name string) {
	s.mu.Lock()
	names := s.names[identityID]
	next := make([]string, len(names), len(names)+1)
	copy(next, names)
	s.names[identityID] = append(next, name)
	doc := s.bumpLocked()
	s.mu.Unlock()

	s.logger.ComponentDebug(logging.ComponentState, "Name added",
		zap.String("identity_id", identityID), zap.String("name", name))
	s.publish(doc)
}

// AddContract sets the single contract for identityID, replacing any
// previous one.
func (s *Store) AddContract(identityID string, contract identity.Contract) {
	s.mu.Lock()
	s.contracts[identityID] = contract.Clone()
	doc := s.bumpLocked()
	s.mu.Unlock()

	s.logger.ComponentDebug(logging.ComponentState, "Contract set", zap.String("identity_id", identityID))
	s.publish(doc)
}

// SetMnemonic replaces the wallet seed phrase.
func (s *Store) SetMnemonic(phrase string) {
	s.mu.Lock()
	s.mnemonic = phrase
	doc := s.bumpLocked()
	s.mu.Unlock()

	s.logger.ComponentDebug(logging.ComponentState, "Mnemonic changed")
	s.publish(doc)
}

// SetSyncing sets the sync flag.
func (s *Store) SetSyncing(flag bool) {
	s.mu.Lock()
	s.syncing = flag
	s.mu.Unlock()
}

// SetError records err in the error slot without touching the sync flag.
// SetError(nil) clears the slot.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	s.errDetails = err
	s.mu.Unlock()
}

// ClearError empties the error slot.
func (s *Store) ClearError() {
	s.SetError(nil)
}

// Reset clears the error slot and marks the store as syncing. It gates every
// fresh sync attempt.
func (s *Store) Reset() {
	s.mu.Lock()
	s.errDetails = nil
	s.syncing = true
	s.mu.Unlock()
}

// IsSyncing reports whether a sync attempt is in progress.
func (s *Store) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncing
}

// IsError reports whether the error slot is set.
func (s *Store) IsError() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errDetails != nil
}

// ErrorDetails returns the recorded error, or nil.
func (s *Store) ErrorDetails() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errDetails
}

// Mnemonic returns the current wallet seed phrase.
func (s *Store) Mnemonic() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mnemonic
}

// Identity looks up an identity by id.
func (s *Store) Identity(id string) (identity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if found := s.findLocked(id); found != nil {
		return *found, true
	}
	return identity.Identity{}, false
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		IsSyncing:    s.syncing,
		ErrorDetails: s.errDetails,
		Document:     s.documentLocked(),
	}
}

// Document returns the persisted part of the state.
func (s *Store) Document() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentLocked()
}

// Restore replaces the persisted part of the state with doc. The sync and
// error flags are left alone. Subscribers are not notified.
func (s *Store) Restore(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.mnemonic = doc.Mnemonic
	s.identities = emptyBuckets()
	for name, items := range doc.Identities {
		s.identities[name] = append([]identity.Identity{}, items...)
	}
	s.names = make(map[string][]string, len(doc.Names))
	for id, names := range doc.Names {
		s.names[id] = append([]string{}, names...)
	}
	s.contracts = make(map[string]identity.Contract, len(doc.Contracts))
	for id, c := range doc.Contracts {
		s.contracts[id] = c.Clone()
	}
	if doc.Version > s.version {
		s.version = doc.Version
	}
	s.mu.Unlock()

	s.logger.ComponentInfo(logging.ComponentState, "State restored",
		zap.Uint64("version", doc.Version), zap.Int("identities", doc.identityCount()))
	return nil
}

// Subscribe registers fn to receive the document after every change to the
// persisted state. fn runs outside the store lock, so deliveries from
// concurrent mutations may arrive out of order; use Document.Version to
// discard stale ones. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Document)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) publish(doc Document) {
	s.subMu.Lock()
	fns := make([]func(Document), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(doc)
	}
}

func (s *Store) bumpLocked() Document {
	s.version++
	return s.documentLocked()
}

func (s *Store) findLocked(id string) *identity.Identity {
	for _, bucket := range s.identities {
		for i := range bucket {
			if bucket[i].ID == id {
				return &bucket[i]
			}
		}
	}
	return nil
}

func (s *Store) documentLocked() Document {
	doc := Document{
		Version:    s.version,
		Mnemonic:   s.mnemonic,
		Identities: make(map[string][]identity.Identity, len(s.identities)),
		Names:      make(map[string][]string, len(s.names)),
		Contracts:  make(map[string]identity.Contract, len(s.contracts)),
	}
	for name, items := range s.identities {
		doc.Identities[name] = append([]identity.Identity{}, items...)
	}
	for id, names := range s.names {
		doc.Names[id] = append([]string{}, names...)
	}
	for id, c := range s.contracts {
		doc.Contracts[id] = c.Clone()
	}
	return doc
}
