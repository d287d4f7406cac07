package client

import (
	"errors"
	"testing"

	werrors "github.com/DeBrosOfficial/walletsync/pkg/errors"
)

func TestDefaultClientConfig(t *testing.T) {
	t.Setenv("WALLETSYNC_NETWORK", "")
	cfg := DefaultClientConfig()
	if cfg.Network != DefaultNetwork {
		t.Fatalf("expected network %q, got %q", DefaultNetwork, cfg.Network)
	}
	if cfg.ContractConfirmation != DefaultContractConfirmation {
		t.Fatalf("expected confirmation %v, got %v", DefaultContractConfirmation, cfg.ContractConfirmation)
	}
	if !cfg.Rehydrate {
		t.Fatalf("expected rehydration to be enabled by default")
	}
}

func TestDefaultNetworkEnvOverride(t *testing.T) {
	t.Setenv("WALLETSYNC_NETWORK", " devnet ")
	if got := DefaultClientConfig().Network; got != "devnet" {
		t.Fatalf("expected devnet from env, got %q", got)
	}
}

func TestValidateClientConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *ClientConfig
		wantErr bool
	}{
		{name: "nil", cfg: nil, wantErr: true},
		{name: "valid", cfg: &ClientConfig{Network: "testnet"}},
		{name: "missing network", cfg: &ClientConfig{Network: "  "}, wantErr: true},
		{name: "negative confirmation", cfg: &ClientConfig{Network: "testnet", ContractConfirmation: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClientConfig(tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClientErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ClientError
		want string
		code string
	}{
		{"op only", NewClientError("register name", "", nil), "register name", werrors.CodeOK},
		{"with cause", NewClientError("create identity", "registration failed", werrors.NewNotFoundError("identity", "x")),
			"create identity: registration failed: identity with ID 'x' not found", werrors.CodeNotFound},
		{"not connected", NewClientError("register contract", "wallet is failed", ErrNotConnected),
			"register contract: wallet is failed: wallet not connected", werrors.CodeFailedPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if got := tt.err.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
		})
	}
}
