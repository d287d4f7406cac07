package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/DeBrosOfficial/walletsync/pkg/provider"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "persistence.olric_servers[0]"
	Message string // e.g., "invalid host:port"
	Hint    string // e.g., "expected host:port"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate performs comprehensive validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateWallet()...)
	errs = append(errs, c.validateSync()...)
	errs = append(errs, c.validatePersistence()...)
	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateMetrics()...)

	return errs
}

func (c *Config) validateWallet() []error {
	var errs []error
	w := c.Wallet

	known := false
	for _, n := range provider.DefaultNetworks {
		if w.Network == n {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, ValidationError{
			Path:    "wallet.network",
			Message: fmt.Sprintf("invalid value %q", w.Network),
			Hint:    "allowed values: " + strings.Join(provider.DefaultNetworks, ", "),
		})
	}

	// An empty mnemonic is allowed: the restored snapshot or the CLI supplies one.
	if w.Mnemonic != "" {
		if err := provider.ValidateMnemonic(w.Mnemonic); err != nil {
			errs = append(errs, ValidationError{
				Path:    "wallet.mnemonic",
				Message: err.Error(),
				Hint:    "expected 12 or 24 lowercase words separated by spaces",
			})
		}
	}

	return errs
}

func (c *Config) validateSync() []error {
	var errs []error

	if c.Sync.ContractConfirmation < 0 {
		errs = append(errs, ValidationError{
			Path:    "sync.contract_confirmation",
			Message: "must not be negative",
		})
	} else if c.Sync.ContractConfirmation > time.Hour {
		errs = append(errs, ValidationError{
			Path:    "sync.contract_confirmation",
			Message: fmt.Sprintf("%s is unreasonably long", c.Sync.ContractConfirmation),
			Hint:    "use a value of at most 1h",
		})
	}

	return errs
}

func (c *Config) validatePersistence() []error {
	var errs []error
	p := c.Persistence

	switch p.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite, BackendLevelDB:
		if p.Path != "" {
			if err := validateParentWritable(p.Path); err != nil {
				errs = append(errs, ValidationError{
					Path:    "persistence.path",
					Message: err.Error(),
				})
			}
		}
	case BackendOlric:
		if len(p.OlricServers) == 0 {
			errs = append(errs, ValidationError{
				Path:    "persistence.olric_servers",
				Message: "must not be empty when backend is olric",
				Hint:    "e.g. [\"localhost:3320\"]",
			})
		}
		for i, addr := range p.OlricServers {
			if err := validateHostPort(addr); err != nil {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("persistence.olric_servers[%d]", i),
					Message: err.Error(),
					Hint:    "expected host:port",
				})
			}
		}
		if p.OlricDMap == "" {
			errs = append(errs, ValidationError{
				Path:    "persistence.olric_dmap",
				Message: "must not be empty when backend is olric",
			})
		}
		if p.OlricTimeout <= 0 {
			errs = append(errs, ValidationError{
				Path:    "persistence.olric_timeout",
				Message: "must be positive",
			})
		}
	case BackendRQLite:
		u, err := url.Parse(p.RQLiteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Path:    "persistence.rqlite_url",
				Message: fmt.Sprintf("invalid URL %q", p.RQLiteURL),
				Hint:    "expected http(s)://host:port",
			})
		}
	default:
		errs = append(errs, ValidationError{
			Path:    "persistence.backend",
			Message: fmt.Sprintf("invalid value %q", p.Backend),
			Hint:    "allowed values: file, sqlite, leveldb, olric, rqlite, memory",
		})
	}

	if p.Backend != BackendMemory && p.Key == "" {
		errs = append(errs, ValidationError{
			Path:    "persistence.key",
			Message: "must not be empty",
		})
	}

	return errs
}

func (c *Config) validateLogging() []error {
	var errs []error
	log := c.Logging

	// Validate level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[log.Level] {
		errs = append(errs, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("invalid value %q", log.Level),
			Hint:    "allowed values: debug, info, warn, error",
		})
	}

	// Validate format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[log.Format] {
		errs = append(errs, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("invalid value %q", log.Format),
			Hint:    "allowed values: json, console",
		})
	}

	if log.OutputFile != "" {
		if err := validateParentWritable(log.OutputFile); err != nil {
			errs = append(errs, ValidationError{
				Path:    "logging.output_file",
				Message: err.Error(),
			})
		}
	}

	return errs
}

func (c *Config) validateMetrics() []error {
	var errs []error
	if c.Metrics.Enabled && c.Metrics.OutputFile != "" {
		if err := validateParentWritable(c.Metrics.OutputFile); err != nil {
			errs = append(errs, ValidationError{
				Path:    "metrics.output_file",
				Message: err.Error(),
			})
		}
	}
	return errs
}

// Helper validation functions

// validateParentWritable checks the directory a file will be created in.
// A missing directory is fine; it is created at runtime.
func validateParentWritable(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	parent := filepath.Dir(expanded)
	info, err := os.Stat(parent)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("parent directory not accessible: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("parent path is not a directory")
	}
	return validateDirWritable(parent)
}

func validateDirWritable(path string) error {
	testFile := filepath.Join(path, ".write_test")
	if err := os.WriteFile(testFile, []byte(""), 0644); err != nil {
		return fmt.Errorf("directory not writable: %v", err)
	}
	os.Remove(testFile)
	return nil
}

func validateHostPort(hostPort string) error {
	idx := strings.LastIndex(hostPort, ":")
	if idx <= 0 {
		return fmt.Errorf("expected format host:port")
	}
	port := hostPort[idx+1:]
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535; got %q", port)
	}
	return nil
}
