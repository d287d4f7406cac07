package persistence

import (
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

func sampleDocument(version uint64) state.Document {
	return state.Document{
		Version:  version,
		Mnemonic: state.DefaultMnemonic,
		Identities: map[string][]identity.Identity{
			identity.Application.Name(): {{ID: "a1", Type: identity.Application}},
			identity.User.Name():        {{ID: "u1", Type: identity.User}},
		},
		Names:     map[string][]string{"u1": {"alice", "alice.eth"}},
		Contracts: map[string]identity.Contract{"a1": {"kind": "token", "symbol": "WSY"}},
	}
}
