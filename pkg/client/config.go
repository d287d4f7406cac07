package client

import (
	"time"
)

// ClientConfig represents configuration for wallet clients
type ClientConfig struct {
	Network              string        `json:"network"`               // Wallet network to connect to (e.g. "testnet")
	ContractConfirmation time.Duration `json:"contract_confirmation"` // Minimum settle time of a contract registration
	Rehydrate            bool          `json:"rehydrate"`             // Load identities from the provider after sync
	QuietMode            bool          `json:"quiet_mode"`            // Suppress debug/info logs
}
