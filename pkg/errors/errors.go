package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// Common sentinel errors for quick checks
var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a resource already exists.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidInput is returned when input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConnected is returned when an operation needs a ready provider
	// connection and there is none.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrProviderUnavailable is returned when the wallet provider cannot be reached.
	ErrProviderUnavailable = errors.New("wallet provider unavailable")

	// ErrInvalidConfig is wrapped when settings are unusable.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInternal is returned when an internal error occurs.
	ErrInternal = errors.New("internal error")
)

// Error is the base interface for all custom errors in the system.
// It extends the standard error interface with additional context.
type Error interface {
	error
	// Code returns the error code
	Code() string
	// Message returns the human-readable error message
	Message() string
	// Unwrap returns the underlying cause
	Unwrap() error
}

// BaseError provides a foundation for all typed errors.
type BaseError struct {
	code    string
	message string
	cause   error
	stack   []uintptr
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *BaseError) Code() string {
	return e.code
}

// Message returns the error message.
func (e *BaseError) Message() string {
	return e.message
}

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// Stack returns the captured stack trace.
func (e *BaseError) Stack() []uintptr {
	return e.stack
}

func captureStack(skip int) []uintptr {
	const maxDepth = 32
	stack := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, stack)
	return stack[:n]
}

// ValidationError represents an input validation error.
type ValidationError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		BaseError: &BaseError{
			code:    CodeValidation,
			message: message,
			stack:   captureStack(1),
		},
		Field: field,
		Value: value,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.message)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

// NotFoundError represents a resource not found error. The workflow raises it
// when an identity cannot be fetched right after registration.
type NotFoundError struct {
	*BaseError
	Resource string
	ID       string
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		BaseError: &BaseError{
			code:    CodeNotFound,
			message: fmt.Sprintf("%s not found", resource),
			stack:   captureStack(1),
		},
		Resource: resource,
		ID:       id,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError represents a resource conflict error.
type ConflictError struct {
	*BaseError
	Resource string
	Field    string
	Value    string
}

// NewConflictError creates a new conflict error.
func NewConflictError(resource, field, value string) *ConflictError {
	message := fmt.Sprintf("%s already exists", resource)
	if field != "" {
		message = fmt.Sprintf("%s with %s='%s' already exists", resource, field, value)
	}
	return &ConflictError{
		BaseError: &BaseError{
			code:    CodeConflict,
			message: message,
			stack:   captureStack(1),
		},
		Resource: resource,
		Field:    field,
		Value:    value,
	}
}

// ConnectivityError reports that the wallet provider could not be reached,
// rejected the seed phrase, or never signalled readiness.
type ConnectivityError struct {
	*BaseError
	Network string
}

// NewConnectivityError creates a new connectivity error.
func NewConnectivityError(network, message string, cause error) *ConnectivityError {
	if message == "" {
		message = "wallet provider unreachable"
	}
	return &ConnectivityError{
		BaseError: &BaseError{
			code:    CodeConnectivity,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Network: network,
	}
}

// RegistrationError reports that the provider rejected an identity, name or
// contract registration.
type RegistrationError struct {
	*BaseError
	Kind    string // "identity", "name" or "contract"
	Subject string
}

// NewRegistrationError creates a new registration error.
func NewRegistrationError(kind, subject, message string, cause error) *RegistrationError {
	if message == "" {
		message = fmt.Sprintf("%s registration rejected", kind)
	}
	return &RegistrationError{
		BaseError: &BaseError{
			code:    CodeRegistration,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Kind:    kind,
		Subject: subject,
	}
}

// NameConflictError is the registration error raised when a name is already
// bound on the network.
type NameConflictError struct {
	*RegistrationError
	Name string
}

// NewNameConflictError creates a new name conflict error.
func NewNameConflictError(name string) *NameConflictError {
	reg := &RegistrationError{
		BaseError: &BaseError{
			code:    CodeNameConflict,
			message: fmt.Sprintf("name '%s' is already registered", name),
			stack:   captureStack(1),
		},
		Kind:    "name",
		Subject: name,
	}
	return &NameConflictError{RegistrationError: reg, Name: name}
}

// StorageError wraps a failure of a snapshot backend.
type StorageError struct {
	*BaseError
	Backend string
}

// NewStorageError creates a new storage error.
func NewStorageError(backend, message string, cause error) *StorageError {
	if message == "" {
		message = fmt.Sprintf("%s storage error", backend)
	}
	return &StorageError{
		BaseError: &BaseError{
			code:    CodeStorageError,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Backend: backend,
	}
}

// Wrap wraps an error with additional context.
// If the error is already one of our custom types, it preserves the code
// and adds the cause chain. Otherwise the result carries CodeInternal.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(Error); ok {
		return &BaseError{
			code:    e.Code(),
			message: message,
			cause:   err,
			stack:   captureStack(1),
		}
	}

	return &BaseError{
		code:    CodeInternal,
		message: message,
		cause:   err,
		stack:   captureStack(1),
	}
}
