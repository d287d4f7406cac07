package errors

import (
	"context"
	"errors"
)

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr) || errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error indicates a resource conflict.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}

	var conflictErr *ConflictError
	return errors.As(err, &conflictErr) || errors.Is(err, ErrConflict)
}

// IsConnectivity checks if an error indicates the provider could not be reached.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}

	var connErr *ConnectivityError
	return errors.As(err, &connErr) || errors.Is(err, ErrProviderUnavailable)
}

// IsRegistration checks if an error indicates the provider rejected a
// registration. Name conflicts count as registration errors.
func IsRegistration(err error) bool {
	if err == nil {
		return false
	}

	var regErr *RegistrationError
	if errors.As(err, &regErr) {
		return true
	}
	var nameErr *NameConflictError
	return errors.As(err, &nameErr)
}

// IsNameConflict checks if an error indicates a name is already taken.
func IsNameConflict(err error) bool {
	if err == nil {
		return false
	}

	var nameErr *NameConflictError
	return errors.As(err, &nameErr)
}

// IsNotConnected checks if an error indicates the wallet has no ready connection.
func IsNotConnected(err error) bool {
	return err != nil && errors.Is(err, ErrNotConnected)
}

// IsStorage checks if an error came from a snapshot backend.
func IsStorage(err error) bool {
	if err == nil {
		return false
	}

	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	if err == nil {
		return CodeOK
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Code()
	}

	// Try to infer from sentinel errors
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancelled
	case errors.Is(err, ErrInvalidConfig):
		return CodeConfigError
	case IsNotFound(err):
		return CodeNotFound
	case IsConflict(err):
		return CodeConflict
	case IsConnectivity(err):
		return CodeConnectivity
	case IsNotConnected(err):
		return CodeFailedPrecondition
	case IsValidation(err):
		return CodeValidation
	default:
		return CodeInternal
	}
}

// GetErrorMessage extracts a human-readable message from an error.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Message()
	}

	return err.Error()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
