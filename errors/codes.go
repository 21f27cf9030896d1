package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Process lifecycle errors
const (
	// ErrCodeLaunchFailed indicates the OS refused to start the process.
	ErrCodeLaunchFailed ErrorCode = "LAUNCH_FAILED"
	// ErrCodeNonZeroExit indicates the process exited with a non-zero code.
	ErrCodeNonZeroExit ErrorCode = "NON_ZERO_EXIT"
	// ErrCodeTimeout indicates the process did not exit in time and was killed.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeNotRunning indicates an operation needs a running process.
	ErrCodeNotRunning ErrorCode = "NOT_RUNNING"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates a failure reported by a wrapped provider.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:         true,
	ErrCodeExternalService: true,
	ErrCodeLaunchFailed:    false,
	ErrCodeNonZeroExit:     false,
	ErrCodeInternal:        false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
