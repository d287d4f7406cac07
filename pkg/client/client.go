// Package client implements the wallet synchronization workflow: it owns the
// provider connection, drives the state container through wallet start-up,
// and runs the identity, name and contract registrations.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/contracts"
	werrors "github.com/DeBrosOfficial/walletsync/pkg/errors"
	"github.com/DeBrosOfficial/walletsync/pkg/identity"
	"github.com/DeBrosOfficial/walletsync/pkg/logging"
	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// Phase is the connectivity state of a Client.
type Phase int32

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "disconnected"
	case PhaseConnecting:
		return "connecting"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// Option customises a Client.
type Option func(*Client)

// WithLogger sets the logger used by the client.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.Wrap(logger)
		}
	}
}

// WithColoredLogger sets an already configured component logger.
func WithColoredLogger(logger *logging.ColoredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics the client reports to.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// Client drives a state.Store against a wallet provider. It holds the only
// provider connection; the connection is created by InitWallet and torn
// down on failure or Close.
type Client struct {
	config   *ClientConfig
	provider contracts.WalletProvider
	store    *state.Store
	logger   *logging.ColoredLogger
	metrics  *Metrics

	mu    sync.RWMutex
	phase Phase
	conn  contracts.Connection
	// gen changes whenever a connection attempt starts or the client is
	// closed, so a finishing attempt can tell it was superseded.
	gen uint64
}

// NewClient creates a new wallet client
func NewClient(config *ClientConfig, provider contracts.WalletProvider, store *state.Store, opts ...Option) (*Client, error) {
	if err := ValidateClientConfig(config); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is required", ErrInvalidConfig)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}

	cfg := *config
	c := &Client{
		config:   &cfg,
		provider: provider,
		store:    store,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		logger, err := newClientLogger(cfg.QuietMode)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		c.logger = logger
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	c.metrics.SetPhase(PhaseDisconnected)

	return c, nil
}

// Config returns a snapshot copy of the client's configuration
func (c *Client) Config() *ClientConfig {
	cp := *c.config
	return &cp
}

// Store returns the state container the client writes to.
func (c *Client) Store() *state.Store {
	return c.store
}

// Phase returns the current connectivity phase.
func (c *Client) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Address returns the wallet address of the ready connection, or "" when
// the wallet is not ready or the provider does not report one.
func (c *Client) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.phase != PhaseReady {
		return ""
	}
	if a, ok := c.conn.(interface{ Address() string }); ok {
		return a.Address()
	}
	return ""
}

func (c *Client) setPhaseLocked(p Phase) {
	c.phase = p
	c.metrics.SetPhase(p)
}

// InitWallet (re)connects the wallet with the store's current seed phrase.
// It never returns an error: failures are recorded in the store's error slot
// and the client moves to PhaseFailed. A call made while another is still
// connecting returns immediately.
func (c *Client) InitWallet(ctx context.Context) {
	c.mu.Lock()
	if c.phase == PhaseConnecting {
		c.mu.Unlock()
		c.logger.ComponentDebug(logging.ComponentWallet, "Wallet sync already in progress")
		return
	}
	c.gen++
	gen := c.gen
	previous := c.conn
	c.conn = nil
	c.setPhaseLocked(PhaseConnecting)
	c.mu.Unlock()

	if previous != nil {
		previous.Disconnect()
	}

	c.store.Reset()
	mnemonic := c.store.Mnemonic()
	started := time.Now()

	c.logger.ComponentInfo(logging.ComponentWallet, "Start wallet sync...",
		zap.String("network", c.config.Network))

	conn, err := c.provider.Connect(ctx, mnemonic, c.config.Network)
	if err == nil {
		err = conn.AwaitReady(ctx)
	}
	if err != nil {
		c.failInit(gen, conn, err)
		return
	}

	c.mu.Lock()
	if c.gen != gen {
		if c.phase != PhaseConnecting {
			c.store.SetSyncing(false)
		}
		c.mu.Unlock()
		conn.Disconnect()
		c.logger.ComponentWarn(logging.ComponentWallet, "Wallet sync superseded, dropping connection")
		return
	}
	c.conn = conn
	c.setPhaseLocked(PhaseReady)
	c.mu.Unlock()

	if c.config.Rehydrate {
		c.rehydrate(ctx, conn)
	}

	c.store.SetSyncing(false)
	c.metrics.ObserveOperation("init_wallet", nil)
	c.logger.ComponentInfo(logging.ComponentWallet, "Wallet is synchronized",
		zap.Duration("took", time.Since(started)))
}

func (c *Client) failInit(gen uint64, conn contracts.Connection, err error) {
	if conn != nil {
		conn.Disconnect()
	}
	c.metrics.ObserveOperation("init_wallet", err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		if c.phase != PhaseConnecting {
			c.store.SetSyncing(false)
		}
		c.logger.ComponentWarn(logging.ComponentWallet, "Superseded wallet sync failed", zap.Error(err))
		return
	}

	c.logger.ComponentError(logging.ComponentWallet, "Wallet synchronized with an error", zap.Error(err))
	c.store.SetError(err)
	c.store.SetSyncing(false)
	c.conn = nil
	c.setPhaseLocked(PhaseFailed)
}

// rehydrate adds the identities the provider knows about but the store does
// not. Failures are logged; the wallet stays usable without them.
func (c *Client) rehydrate(ctx context.Context, conn contracts.Connection) {
	identities, err := conn.ListIdentities(ctx)
	c.metrics.ObserveOperation("rehydrate", err)
	if err != nil {
		c.logger.ComponentWarn(logging.ComponentWallet, "Failed to load identities from provider", zap.Error(err))
		return
	}

	added := 0
	for _, id := range identities {
		if _, known := c.store.Identity(id.ID); known {
			continue
		}
		if err := c.store.AddIdentity(id, id.Type); err != nil {
			c.logger.ComponentWarn(logging.ComponentWallet, "Skipping provider identity",
				zap.String("id", id.ID), zap.Error(err))
			continue
		}
		added++
	}
	c.logger.ComponentDebug(logging.ComponentWallet, "Identities rehydrated",
		zap.Int("listed", len(identities)), zap.Int("added", added))
}

// connection returns the ready connection or ErrNotConnected.
func (c *Client) connection(op string) (contracts.Connection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.phase != PhaseReady || c.conn == nil {
		return nil, NewClientError(op, "wallet is "+c.phase.String(), ErrNotConnected)
	}
	return c.conn, nil
}

// CreateIdentity registers a new identity of typ with the provider, fetches
// the canonical record and adds it to the store under the type the provider
// reports.
func (c *Client) CreateIdentity(ctx context.Context, typ identity.Type) (identity.Identity, error) {
	created, err := c.createIdentity(ctx, typ)
	c.metrics.ObserveOperation("create_identity", err)
	return created, err
}

func (c *Client) createIdentity(ctx context.Context, typ identity.Type) (identity.Identity, error) {
	const op = "create identity"
	if typ.IsZero() {
		return identity.Identity{}, werrors.NewValidationError("type", "identity type is required", nil)
	}
	conn, err := c.connection(op)
	if err != nil {
		return identity.Identity{}, err
	}

	id, err := conn.RegisterIdentity(ctx, typ)
	if err != nil {
		return identity.Identity{}, NewClientError(op, "registration failed", err)
	}

	fetched, err := conn.GetIdentity(ctx, id)
	if err != nil {
		return identity.Identity{}, NewClientError(op, "failed to fetch registered identity", err)
	}

	if err := c.store.AddIdentity(fetched, fetched.Type); err != nil {
		return identity.Identity{}, NewClientError(op, "failed to record identity", err)
	}

	c.logger.ComponentInfo(logging.ComponentWallet, "Identity created",
		zap.String("id", fetched.ID), zap.String("type", fetched.Type.Name()))
	return fetched, nil
}

// RegisterName binds name to id with the provider and records it.
func (c *Client) RegisterName(ctx context.Context, id identity.Identity, name string) error {
	err := c.registerName(ctx, id, name)
	c.metrics.ObserveOperation("register_name", err)
	return err
}

func (c *Client) registerName(ctx context.Context, id identity.Identity, name string) error {
	const op = "register name"
	conn, err := c.connection(op)
	if err != nil {
		return err
	}

	if err := conn.RegisterName(ctx, id, name); err != nil {
		return NewClientError(op, fmt.Sprintf("failed to register %q", name), err)
	}

	c.store.AddName(id.ID, name)
	c.logger.ComponentInfo(logging.ComponentWallet, "Name registered",
		zap.String("identity_id", id.ID), zap.String("name", name))
	return nil
}

// RegisterContract binds doc to id once the confirmation delay has passed.
// Cancelling ctx during the wait leaves the store unchanged.
func (c *Client) RegisterContract(ctx context.Context, id identity.Identity, doc identity.Contract) error {
	err := c.registerContract(ctx, id, doc)
	c.metrics.ObserveOperation("register_contract", err)
	return err
}

func (c *Client) registerContract(ctx context.Context, id identity.Identity, doc identity.Contract) error {
	const op = "register contract"
	if _, err := c.connection(op); err != nil {
		return err
	}

	if wait := c.config.ContractConfirmation; wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return NewClientError(op, "confirmation interrupted", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return NewClientError(op, "confirmation interrupted", err)
	}

	c.store.AddContract(id.ID, doc)
	c.logger.ComponentInfo(logging.ComponentWallet, "Contract registered", zap.String("identity_id", id.ID))
	return nil
}

// Close disconnects the wallet and returns the client to PhaseDisconnected.
// An InitWallet still in flight drops its connection when it finishes.
func (c *Client) Close() error {
	c.mu.Lock()
	c.gen++
	conn := c.conn
	c.conn = nil
	c.setPhaseLocked(PhaseDisconnected)
	c.mu.Unlock()

	if conn != nil {
		conn.Disconnect()
		c.logger.ComponentInfo(logging.ComponentWallet, "Wallet disconnected")
	}
	return nil
}
