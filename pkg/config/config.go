package config

import (
	"time"

	"github.com/DeBrosOfficial/walletsync/pkg/state"
)

// Config represents the main configuration for walletctl
type Config struct {
	Wallet      WalletConfig      `yaml:"wallet"`
	Sync        SyncConfig        `yaml:"sync"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// WalletConfig selects the wallet and the network it lives on
type WalletConfig struct {
	Mnemonic string `yaml:"mnemonic"` // Seed phrase used until one is restored or set
	Network  string `yaml:"network"`  // testnet, devnet or local
}

// SyncConfig tunes the synchronization workflow
type SyncConfig struct {
	ContractConfirmation time.Duration `yaml:"contract_confirmation"` // Settle time of a contract registration
	Rehydrate            bool          `yaml:"rehydrate"`             // Load identities from the provider after sync
}

// Snapshot backends
const (
	BackendFile    = "file"
	BackendSQLite  = "sqlite"
	BackendLevelDB = "leveldb"
	BackendOlric   = "olric"
	BackendRQLite  = "rqlite"
	BackendMemory  = "memory"
)

// PersistenceConfig selects where the wallet state is snapshotted
type PersistenceConfig struct {
	Backend      string        `yaml:"backend"`       // file, sqlite, leveldb, olric, rqlite or memory
	Path         string        `yaml:"path"`          // File or directory for local backends; empty uses the config dir
	Key          string        `yaml:"key"`           // Snapshot key inside shared backends
	OlricServers []string      `yaml:"olric_servers"` // host:port of Olric members
	OlricDMap    string        `yaml:"olric_dmap"`    // DMap holding the snapshot
	OlricTimeout time.Duration `yaml:"olric_timeout"` // Timeout for Olric operations
	RQLiteURL    string        `yaml:"rqlite_url"`    // e.g. http://localhost:5001
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json, console
	OutputFile string `yaml:"output_file"` // Empty for stdout
}

// MetricsConfig controls the Prometheus metrics dump
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	OutputFile string `yaml:"output_file"` // Empty for stderr
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Wallet: WalletConfig{
			Mnemonic: state.DefaultMnemonic,
			Network:  "testnet",
		},
		Sync: SyncConfig{
			ContractConfirmation: 2 * time.Second,
			Rehydrate:            true,
		},
		Persistence: PersistenceConfig{
			Backend:      BackendFile,
			Path:         "", // resolved against ConfigDir
			Key:          "wallet_state",
			OlricServers: []string{"localhost:3320"},
			OlricDMap:    "walletsync",
			OlricTimeout: 10 * time.Second,
			RQLiteURL:    "http://localhost:5001",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}
