package client

import (
	"strings"

	werrors "github.com/DeBrosOfficial/walletsync/pkg/errors"
)

var (
	// ErrNotConnected is wrapped by every domain operation attempted before
	// InitWallet has produced a ready connection.
	ErrNotConnected = werrors.ErrNotConnected

	// ErrInvalidConfig is wrapped by NewClient for unusable settings.
	ErrInvalidConfig = werrors.ErrInvalidConfig
)

// ClientError is what the domain operations return. The provider error
// stays reachable through Unwrap, so errors.IsNameConflict and friends
// still see it.
type ClientError struct {
	Op      string
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	parts := []string{e.Op}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ClientError) Unwrap() error { return e.Err }

// Code is the code of the wrapped error.
func (e *ClientError) Code() string {
	return werrors.GetErrorCode(e.Err)
}

// NewClientError builds a ClientError for op.
func NewClientError(op, message string, err error) *ClientError {
	return &ClientError{Op: op, Message: message, Err: err}
}
