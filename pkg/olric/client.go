// Package olric wraps an Olric cluster client for storing small blobs in a
// distributed map shared by several devices.
package olric

import (
	"context"
	"errors"
	"fmt"
	"time"

	olriclib "github.com/olric-data/olric"
	"go.uber.org/zap"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("olric: key not found")

// Client wraps an Olric cluster client bound to one DMap
type Client struct {
	client  *olriclib.ClusterClient
	dmap    olriclib.DMap
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds configuration for the Olric client
type Config struct {
	// Servers is a list of Olric server addresses (e.g., ["localhost:3320"])
	// If empty, defaults to ["localhost:3320"]
	Servers []string

	// DMap is the distributed map holding the values
	DMap string

	// Timeout is the timeout for client operations
	// If zero, defaults to 10 seconds
	Timeout time.Duration
}

// NewClient creates a new Olric client wrapper
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	servers := cfg.Servers
	if len(servers) == 0 {
		servers = []string{"localhost:3320"}
	}
	if cfg.DMap == "" {
		return nil, fmt.Errorf("olric dmap name is required")
	}

	client, err := olriclib.NewClusterClient(servers)
	if err != nil {
		return nil, fmt.Errorf("failed to create Olric cluster client: %w", err)
	}

	dm, err := client.NewDMap(cfg.DMap)
	if err != nil {
		_ = client.Close(context.Background())
		return nil, fmt.Errorf("failed to open DMap %s: %w", cfg.DMap, err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	logger.Debug("Olric client ready", zap.Strings("servers", servers), zap.String("dmap", cfg.DMap))

	return &Client{
		client:  client,
		dmap:    dm,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Put stores value under key.
func (c *Client) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.dmap.Put(ctx, key, value); err != nil {
		return fmt.Errorf("olric put %s failed: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	gr, err := c.dmap.Get(ctx, key)
	if err != nil {
		if errors.Is(err, olriclib.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("olric get %s failed: %w", key, err)
	}

	val, err := gr.Byte()
	if err != nil {
		return nil, fmt.Errorf("olric value decode failed: %w", err)
	}
	return val, nil
}

// Health checks if the Olric cluster answers a put/get round trip
func (c *Client) Health(ctx context.Context) error {
	testKey := fmt.Sprintf("_health_%d", time.Now().UnixNano())
	testValue := []byte("ok")

	if err := c.Put(ctx, testKey, testValue); err != nil {
		return fmt.Errorf("health check put failed: %w", err)
	}

	val, err := c.Get(ctx, testKey)
	if err != nil {
		return fmt.Errorf("health check get failed: %w", err)
	}
	if string(val) != string(testValue) {
		return fmt.Errorf("health check value mismatch: expected %q, got %q", testValue, val)
	}

	// Clean up test key
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	_, _ = c.dmap.Delete(ctx, testKey)

	return nil
}

// Close closes the Olric client connection
func (c *Client) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Close(ctx)
}
