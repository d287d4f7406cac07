package contracts

import (
	"context"

	"github.com/DeBrosOfficial/walletsync/pkg/identity"
)

// WalletProvider opens connections to a wallet network.
type WalletProvider interface {
	// Connect constructs a connection for the wallet identified by seed on
	// the named network. It fails with a connectivity or validation error
	// when the network is unreachable or the seed is rejected. The returned
	// connection is not usable until AwaitReady succeeds.
	Connect(ctx context.Context, seed, network string) (Connection, error)
}

// Connection is an open handle to a wallet network.
type Connection interface {
	// AwaitReady blocks until the wallet has synchronized with the network.
	AwaitReady(ctx context.Context) error

	// RegisterIdentity registers a new identity of the given type and
	// returns the id assigned by the network.
	RegisterIdentity(ctx context.Context, typ identity.Type) (string, error)

	// GetIdentity fetches the canonical record for id. The returned type is
	// authoritative.
	GetIdentity(ctx context.Context, id string) (identity.Identity, error)

	// RegisterName binds name to the identity. A name already bound on the
	// network fails with a name conflict error.
	RegisterName(ctx context.Context, id identity.Identity, name string) error

	// ListIdentities returns every identity the wallet owns on the network.
	ListIdentities(ctx context.Context) ([]identity.Identity, error)

	// Disconnect releases the connection. It is safe to call after a
	// partial failure and more than once.
	Disconnect()
}
