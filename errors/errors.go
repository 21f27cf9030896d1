package errors

import (
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code" yaml:"code"`
	// Message is a human-readable error message.
	Message string `json:"message" yaml:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable" yaml:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-" yaml:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Process Error Constructors ---

// LaunchFailed creates a new AppError for an executable that could not be started.
func LaunchFailed(executable string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeLaunchFailed, Message: fmt.Sprintf("Failed to start %s.", executable),
		Retryable: false, Cause: cause,
		Details: map[string]any{"executable": executable},
	}
}

// NonZeroExit creates a new AppError for a process that exited unsuccessfully.
func NonZeroExit(executable string, exitCode int) *AppError {
	return &AppError{
		Code: ErrCodeNonZeroExit, Message: fmt.Sprintf("%s exited with code %d.", executable, exitCode),
		Retryable: false,
		Details:   map[string]any{"executable": executable, "exit_code": exitCode},
	}
}

// Timeout creates a new AppError for a process that was killed after its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The process took too long and was killed.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// NotRunning creates a new AppError for an operation on a process that is not running.
func NotRunning(operation string) *AppError {
	return &AppError{
		Code: ErrCodeNotRunning, Message: fmt.Sprintf("Cannot %s: process is not running.", operation),
		Retryable: false,
		Details:   map[string]any{"operation": operation},
	}
}

// --- Common Error Constructors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}

// ExternalServiceError creates a new AppError for an error from a wrapped provider.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s provider encountered an error.", service),
		Retryable: true,
		Details:   map[string]any{"service": service}, Cause: cause,
	}
}

// Wrap converts any error into an AppError. AppErrors anywhere in the chain
// are returned as they are; other errors become Internal.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
