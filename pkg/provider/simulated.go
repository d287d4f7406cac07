// Package provider contains an in-process wallet network. It stands in for
// a real identity network in demos and tests and supports fault injection.
package provider

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	"github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
	"github.com/DeBrosOfficial/walletsync/pkg/logging"
)

// Operation names a provider call that can be made to fail.
type Operation string

const (
	OpConnect          Operation = "connect"
	OpAwaitReady       Operation = "await_ready"
	OpRegisterIdentity Operation = "register_identity"
	OpGetIdentity      Operation = "get_identity"
	OpRegisterName     Operation = "register_name"
	OpListIdentities   Operation = "list_identities"
)

// DefaultNetworks are the networks the simulated provider accepts.
var DefaultNetworks = []string{"testnet", "devnet", "local"}

// Options configures a Simulated provider.
type Options struct {
	// Networks accepted by Connect. Defaults to DefaultNetworks.
	Networks []string
	// ReadyLatency delays AwaitReady.
	ReadyLatency time.Duration
	Logger       *zap.Logger
}

type record struct {
	identity identity.Identity
	owner    common.Address
	seq      int
}

type ledger struct {
	identities map[string]*record
	names      map[string]string // name -> identity id
	seq        int
}

// Simulated is an in-process wallet network. Identities and names live in
// one ledger per network and outlive individual connections.
type Simulated struct {
	mu       sync.Mutex
	networks map[string]*ledger
	faults   map[Operation]error
	latency  time.Duration
	logger   *logging.ColoredLogger

	connects int
}

var _ contracts.WalletProvider = (*Simulated)(nil)

// NewSimulated creates a provider with empty ledgers.
func NewSimulated(opts Options) *Simulated {
	networks := opts.Networks
	if len(networks) == 0 {
		networks = DefaultNetworks
	}
	p := &Simulated{
		networks: make(map[string]*ledger, len(networks)),
		faults:   make(map[Operation]error),
		latency:  opts.ReadyLatency,
		logger:   logging.Wrap(opts.Logger),
	}
	for _, n := range networks {
		p.networks[n] = &ledger{
			identities: make(map[string]*record),
			names:      make(map[string]string),
		}
	}
	return p
}

// Fail makes every subsequent call of op return err until Heal is called.
func (p *Simulated) Fail(op Operation, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faults[op] = err
}

// Heal removes the injected fault for op.
func (p *Simulated) Heal(op Operation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.faults, op)
}

// Connects returns how many connections have been opened.
func (p *Simulated) Connects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connects
}

func (p *Simulated) fault(op Operation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.faults[op]
}

// Connect validates the seed phrase and opens a connection to network.
func (p *Simulated) Connect(ctx context.Context, seed, network string) (contracts.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewConnectivityError(network, "connect cancelled", err)
	}
	if err := p.fault(OpConnect); err != nil {
		return nil, errors.NewConnectivityError(network, "", err)
	}

	p.mu.Lock()
	_, known := p.networks[network]
	p.mu.Unlock()
	if !known {
		return nil, errors.NewConnectivityError(network, "unknown network "+network, errors.ErrProviderUnavailable)
	}

	address, err := DeriveAddress(seed)
	if err != nil {
		return nil, errors.NewConnectivityError(network, "invalid seed phrase", err)
	}

	p.mu.Lock()
	p.connects++
	p.mu.Unlock()

	p.logger.ComponentInfo(logging.ComponentProvider, "Wallet connection opened",
		zap.String("network", network), zap.String("address", address.Hex()))

	return &connection{provider: p, network: network, address: address}, nil
}

type connection struct {
	provider *Simulated
	network  string
	address  common.Address

	mu     sync.Mutex
	ready  bool
	closed bool
}

// Address returns the wallet address the connection acts for.
func (c *connection) Address() string {
	return c.address.Hex()
}

func (c *connection) AwaitReady(ctx context.Context) error {
	c.provider.mu.Lock()
	latency := c.provider.latency
	c.provider.mu.Unlock()

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return errors.NewConnectivityError(c.network, "readiness wait cancelled", ctx.Err())
		case <-timer.C:
		}
	}

	if err := c.provider.fault(OpAwaitReady); err != nil {
		return errors.NewConnectivityError(c.network, "wallet failed to synchronize", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.NewConnectivityError(c.network, "connection closed", errors.ErrNotConnected)
	}
	c.ready = true
	return nil
}

func (c *connection) usable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.ready {
		return errors.NewConnectivityError(c.network, "connection is not ready", errors.ErrNotConnected)
	}
	return nil
}

func (c *connection) ledger() *ledger {
	return c.provider.networks[c.network]
}

func (c *connection) RegisterIdentity(ctx context.Context, typ identity.Type) (string, error) {
	if err := c.usable(ctx); err != nil {
		return "", err
	}
	if err := c.provider.fault(OpRegisterIdentity); err != nil {
		return "", errors.NewRegistrationError("identity", typ.Name(), "", err)
	}
	if typ.IsZero() {
		return "", errors.NewRegistrationError("identity", "", "identity type is required", errors.ErrInvalidInput)
	}

	id := uuid.New().String()

	c.provider.mu.Lock()
	l := c.ledger()
	l.seq++
	l.identities[id] = &record{
		identity: identity.Identity{ID: id, Type: typ},
		owner:    c.address,
		seq:      l.seq,
	}
	c.provider.mu.Unlock()

	c.provider.logger.ComponentDebug(logging.ComponentProvider, "Identity registered",
		zap.String("id", id), zap.String("type", typ.Name()))
	return id, nil
}

func (c *connection) GetIdentity(ctx context.Context, id string) (identity.Identity, error) {
	if err := c.usable(ctx); err != nil {
		return identity.Identity{}, err
	}
	if err := c.provider.fault(OpGetIdentity); err != nil {
		return identity.Identity{}, errors.Wrap(err, "failed to fetch identity")
	}

	c.provider.mu.Lock()
	defer c.provider.mu.Unlock()
	rec, ok := c.ledger().identities[id]
	if !ok {
		return identity.Identity{}, errors.NewNotFoundError("identity", id)
	}
	return rec.identity, nil
}

func (c *connection) RegisterName(ctx context.Context, id identity.Identity, name string) error {
	if err := c.usable(ctx); err != nil {
		return err
	}
	if err := c.provider.fault(OpRegisterName); err != nil {
		return errors.NewRegistrationError("name", name, "", err)
	}
	if name == "" {
		return errors.NewRegistrationError("name", name, "name must not be empty", errors.ErrInvalidInput)
	}

	c.provider.mu.Lock()
	defer c.provider.mu.Unlock()
	l := c.ledger()
	if _, ok := l.identities[id.ID]; !ok {
		return errors.NewRegistrationError("name", name, "", errors.NewNotFoundError("identity", id.ID))
	}
	if _, taken := l.names[name]; taken {
		return errors.NewNameConflictError(name)
	}
	l.names[name] = id.ID
	return nil
}

func (c *connection) ListIdentities(ctx context.Context) ([]identity.Identity, error) {
	if err := c.usable(ctx); err != nil {
		return nil, err
	}
	if err := c.provider.fault(OpListIdentities); err != nil {
		return nil, errors.Wrap(err, "failed to list identities")
	}

	c.provider.mu.Lock()
	var owned []*record
	for _, rec := range c.ledger().identities {
		if rec.owner == c.address {
			owned = append(owned, rec)
		}
	}
	c.provider.mu.Unlock()

	sort.Slice(owned, func(i, j int) bool { return owned[i].seq < owned[j].seq })
	out := make([]identity.Identity, 0, len(owned))
	for _, rec := range owned {
		out = append(out, rec.identity)
	}
	return out, nil
}

func (c *connection) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.ready = false
	c.provider.logger.ComponentInfo(logging.ComponentProvider, "Wallet connection closed",
		zap.String("network", c.network))
}

// Import records identities and names owned by the wallet for seed on
// network, typically ones restored from a snapshot, since the ledgers only
// live as long as the process. Known ids and taken names are skipped.
func (p *Simulated) Import(seed, network string, identities []identity.Identity, names map[string][]string) error {
	address, err := DeriveAddress(seed)
	if err != nil {
		return errors.NewValidationError("mnemonic", "invalid seed phrase", nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.networks[network]
	if !ok {
		return errors.NewConnectivityError(network, "unknown network "+network, errors.ErrProviderUnavailable)
	}

	imported := 0
	for _, id := range identities {
		if id.ID == "" || id.Type.IsZero() {
			continue
		}
		if _, exists := l.identities[id.ID]; exists {
			continue
		}
		l.seq++
		l.identities[id.ID] = &record{identity: id, owner: address, seq: l.seq}
		imported++
	}
	for id, list := range names {
		if _, exists := l.identities[id]; !exists {
			continue
		}
		for _, name := range list {
			if _, taken := l.names[name]; !taken {
				l.names[name] = id
			}
		}
	}

	p.logger.ComponentDebug(logging.ComponentProvider, "Ledger imported",
		zap.String("network", network), zap.Int("identities", imported))
	return nil
}
