package state

import (
	"fmt"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
)

// Document is the persisted form of the state: a flat keyed document with
// the seed phrase and the three collections. Sync and error flags are
// transient and never persisted.
type Document struct {
	Version    uint64                          `json:"version"`
	Mnemonic   string                          `json:"mnemonic"`
	Identities map[string][]identity.Identity `json:"identities"`
	Names      map[string][]string             `json:"names"`
	Contracts  map[string]identity.Contract    `json:"contracts"`
}

// Validate checks that every bucket is a known type, that identities sit in
// the bucket of their own type, and that ids are unique.
func (d Document) Validate() error {
	seen := make(map[string]bool)
	for name, items := range d.Identities {
		typ, err := identity.ParseType(name)
		if err != nil {
			return errors.NewValidationError("identities", fmt.Sprintf("unknown bucket %q", name), name)
		}
		for _, item := range items {
			if item.ID == "" {
				return errors.NewValidationError("identities", "identity without id", name)
			}
			if item.Type != typ {
				return errors.NewValidationError("identities",
					fmt.Sprintf("identity %s has type %q but is stored under %q", item.ID, item.Type, name), item.ID)
			}
			if seen[item.ID] {
				return errors.NewConflictError("identity", "id", item.ID)
			}
			seen[item.ID] = true
		}
	}
	return nil
}

func (d Document) identityCount() int {
	n := 0
	for _, items := range d.Identities {
		n += len(items)
	}
	return n
}

// Snapshot is a consistent, deep-copied view of the whole state.
type Snapshot struct {
	IsSyncing    bool
	ErrorDetails error
	Document
}

// IsError reports whether the error slot is set.
func (s Snapshot) IsError() bool {
	return s.ErrorDetails != nil
}
