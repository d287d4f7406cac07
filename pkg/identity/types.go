// Package identity defines the identity kinds a wallet can register and the
// records the rest of the module passes around.
package identity

import (
	"fmt"
	"strings"

	"github.com/DeBrosOfficial/walletsync/pkg/errors"
)

// Type classifies an identity. Only the values returned by Types exist.
type Type struct {
	name  string
	value int
}

var (
	// Application identities own contracts.
	Application = Type{name: "application", value: 1}
	// User identities own names.
	User = Type{name: "user", value: 2}
)

var registry = []Type{Application, User}

// Types returns every identity type in stable registry order.
func Types() []Type {
	out := make([]Type, len(registry))
	copy(out, registry)
	return out
}

// ParseType resolves a type by name, case-insensitively.
func ParseType(name string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, t := range registry {
		if t.name == normalized {
			return t, nil
		}
	}
	return Type{}, errors.NewValidationError("type", fmt.Sprintf("unknown identity type %q", name), name)
}

// Name returns the stable name used as the bucket key.
func (t Type) Name() string { return t.name }

// Value returns the numeric discriminant.
func (t Type) Value() int { return t.value }

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool { return t.name == "" }

func (t Type) String() string { return t.name }

// MarshalText encodes the type as its name.
func (t Type) MarshalText() ([]byte, error) {
	if t.IsZero() {
		return nil, errors.NewValidationError("type", "identity type is not set", nil)
	}
	return []byte(t.name), nil
}

// UnmarshalText decodes a type from its name.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
