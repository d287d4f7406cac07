package errors

// Error codes for categorizing errors.
const (
	// CodeOK indicates success (not an error).
	CodeOK = "OK"

	// CodeCancelled indicates the operation was cancelled.
	CodeCancelled = "CANCELLED"

	// CodeNotFound indicates a resource was not found.
	CodeNotFound = "NOT_FOUND"

	// CodeFailedPrecondition indicates the operation was rejected because the
	// wallet is not in a required state.
	CodeFailedPrecondition = "FAILED_PRECONDITION"

	// CodeInternal indicates internal errors.
	CodeInternal = "INTERNAL"

	// Domain-specific error codes

	// CodeValidation indicates input validation failed.
	CodeValidation = "VALIDATION_ERROR"

	// CodeConflict indicates a resource conflict (e.g., duplicate identity id).
	CodeConflict = "CONFLICT"

	// CodeConnectivity indicates the provider is unreachable or the seed is invalid.
	CodeConnectivity = "CONNECTIVITY_ERROR"

	// CodeRegistration indicates the provider rejected a registration.
	CodeRegistration = "REGISTRATION_ERROR"

	// CodeNameConflict indicates the provider rejected a name that is already taken.
	CodeNameConflict = "NAME_CONFLICT"

	// CodeStorageError indicates a snapshot backend operation failed.
	CodeStorageError = "STORAGE_ERROR"

	// CodeConfigError indicates a configuration error.
	CodeConfigError = "CONFIG_ERROR"
)
