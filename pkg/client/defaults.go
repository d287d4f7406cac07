package client

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultNetwork is the wallet network used when none is configured.
	DefaultNetwork = "testnet"

	// DefaultContractConfirmation is how long a contract registration takes
	// to settle.
	DefaultContractConfirmation = 2 * time.Second
)

// DefaultClientConfig returns a default client configuration.
// WALLETSYNC_NETWORK overrides the network.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Network:              defaultNetwork(),
		ContractConfirmation: DefaultContractConfirmation,
		Rehydrate:            true,
		QuietMode:            false,
	}
}

func defaultNetwork() string {
	if v := strings.TrimSpace(os.Getenv("WALLETSYNC_NETWORK")); v != "" {
		return v
	}
	return DefaultNetwork
}

// ValidateClientConfig validates a client configuration
func ValidateClientConfig(cfg *ClientConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}

	if strings.TrimSpace(cfg.Network) == "" {
		return fmt.Errorf("%w: network is required", ErrInvalidConfig)
	}

	if cfg.ContractConfirmation < 0 {
		return fmt.Errorf("%w: contract confirmation must not be negative", ErrInvalidConfig)
	}

	return nil
}
