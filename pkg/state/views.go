package state

import "github.com/DeBrosOfficial/walletsync/pkg/identity"

// IdentityList groups the identities of one type.
type IdentityList struct {
	Type  identity.Type       `json:"type"`
	Items []identity.Identity `json:"items"`
}

// UserIdentity is a user identity together with its names.
type UserIdentity struct {
	identity.Identity
	Names []string `json:"names"`
}

// ApplicationIdentity is an application identity together with its contract,
// which is nil when none was registered.
type ApplicationIdentity struct {
	identity.Identity
	Contract identity.Contract `json:"contract,omitempty"`
}

// IdentityLists returns one list per identity type, in registry order.
func (s Snapshot) IdentityLists() []IdentityList {
	types := identity.Types()
	lists := make([]IdentityList, 0, len(types))
	for _, t := range types {
		items := s.Identities[t.Name()]
		if items == nil {
			items = []identity.Identity{}
		}
		lists = append(lists, IdentityList{Type: t, Items: items})
	}
	return lists
}

// UserIdentitiesWithNames merges every user identity with its names.
func (s Snapshot) UserIdentitiesWithNames() []UserIdentity {
	users := s.Identities[identity.User.Name()]
	out := make([]UserIdentity, 0, len(users))
	for _, u := range users {
		names := s.Names[u.ID]
		if names == nil {
			names = []string{}
		}
		out = append(out, UserIdentity{Identity: u, Names: names})
	}
	return out
}

// ApplicationIdentitiesWithContracts merges every application identity with
// its contract.
func (s Snapshot) ApplicationIdentitiesWithContracts() []ApplicationIdentity {
	apps := s.Identities[identity.Application.Name()]
	out := make([]ApplicationIdentity, 0, len(apps))
	for _, a := range apps {
		out = append(out, ApplicationIdentity{Identity: a, Contract: s.Contracts[a.ID]})
	}
	return out
}

// IdentityLists projects the current state; see Snapshot.IdentityLists.
func (s *Store) IdentityLists() []IdentityList {
	return s.Snapshot().IdentityLists()
}

// UserIdentitiesWithNames projects the current state; see
// Snapshot.UserIdentitiesWithNames.
func (s *Store) UserIdentitiesWithNames() []UserIdentity {
	return s.Snapshot().UserIdentitiesWithNames()
}

// ApplicationIdentitiesWithContracts projects the current state; see
// Snapshot.ApplicationIdentitiesWithContracts.
func (s *Store) ApplicationIdentitiesWithContracts() []ApplicationIdentity {
	return s.Snapshot().ApplicationIdentitiesWithContracts()
}
