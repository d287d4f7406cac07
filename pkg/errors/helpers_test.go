package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "NotFoundError",
			err:      NewNotFoundError("identity", "123"),
			expected: true,
		},
		{
			name:     "sentinel ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped NotFoundError",
			err:      Wrap(NewNotFoundError("identity", "123"), "context"),
			expected: true,
		},
		{
			name:     "wrapped sentinel",
			err:      Wrap(ErrNotFound, "context"),
			expected: true,
		},
		{
			name:     "other error",
			err:      NewStorageError("sqlite", "", nil),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsNotFound(tt.err)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestIsRegistration(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"registration error", NewRegistrationError("identity", "user", "", nil), true},
		{"name conflict", NewNameConflictError("alice"), true},
		{"wrapped name conflict", fmt.Errorf("register: %w", NewNameConflictError("alice")), true},
		{"connectivity", NewConnectivityError("testnet", "", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsRegistration(tt.err); result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestIsNameConflict(t *testing.T) {
	if !IsNameConflict(NewNameConflictError("bob")) {
		t.Error("Expected name conflict")
	}
	if IsNameConflict(NewRegistrationError("name", "bob", "", nil)) {
		t.Error("Plain registration error is not a name conflict")
	}
	if IsNameConflict(nil) {
		t.Error("nil is not a name conflict")
	}
}

func TestIsConnectivity(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connectivity error", NewConnectivityError("testnet", "", nil), true},
		{"sentinel", ErrProviderUnavailable, true},
		{"wrapped sentinel", fmt.Errorf("dial: %w", ErrProviderUnavailable), true},
		{"validation", NewValidationError("mnemonic", "bad", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsConnectivity(tt.err); result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestIsConflict(t *testing.T) {
	if !IsConflict(NewConflictError("identity", "id", "x")) {
		t.Error("Expected conflict")
	}
	if !IsConflict(fmt.Errorf("add: %w", ErrConflict)) {
		t.Error("Expected wrapped sentinel to be a conflict")
	}
	if IsConflict(errors.New("other")) {
		t.Error("Unexpected conflict")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(NewValidationError("type", "unknown", "robot")) {
		t.Error("Expected validation error")
	}
	if !IsValidation(ErrInvalidInput) {
		t.Error("Expected sentinel to be a validation error")
	}
	if IsValidation(nil) {
		t.Error("nil is not a validation error")
	}
}

func TestIsNotConnected(t *testing.T) {
	if !IsNotConnected(fmt.Errorf("create identity: %w", ErrNotConnected)) {
		t.Error("Expected not connected")
	}
	if IsNotConnected(nil) {
		t.Error("nil is not a not-connected error")
	}
}

func TestIsStorage(t *testing.T) {
	if !IsStorage(Wrap(NewStorageError("file", "", nil), "persist")) {
		t.Error("Expected storage error")
	}
	if IsStorage(ErrInternal) {
		t.Error("Unexpected storage error")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, CodeOK},
		{"typed not found", NewNotFoundError("identity", "1"), CodeNotFound},
		{"sentinel not found", ErrNotFound, CodeNotFound},
		{"sentinel conflict", ErrConflict, CodeConflict},
		{"sentinel provider unavailable", ErrProviderUnavailable, CodeConnectivity},
		{"not connected", ErrNotConnected, CodeFailedPrecondition},
		{"invalid input", ErrInvalidInput, CodeValidation},
		{"cancelled", context.Canceled, CodeCancelled},
		{"wrapped deadline", fmt.Errorf("sync: %w", context.DeadlineExceeded), CodeCancelled},
		{"invalid config", fmt.Errorf("%w: network is required", ErrInvalidConfig), CodeConfigError},
		{"plain", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := GetErrorCode(tt.err); code != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, code)
			}
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	if msg := GetErrorMessage(nil); msg != "" {
		t.Errorf("Expected empty message, got %q", msg)
	}
	if msg := GetErrorMessage(NewConnectivityError("testnet", "readiness failed", errors.New("eof"))); msg != "readiness failed" {
		t.Errorf("unexpected message %q", msg)
	}
	if msg := GetErrorMessage(errors.New("plain")); msg != "plain" {
		t.Errorf("unexpected message %q", msg)
	}
}
