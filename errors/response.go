package errors

import (
	stderrors "errors"
)

// ErrorReport is the serializable form of an AppError.
type ErrorReport struct {
	Code      ErrorCode      `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
	Cause     string         `json:"cause,omitempty" yaml:"cause,omitempty"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// ToReport converts an AppError to an ErrorReport for serialization.
func (e *AppError) ToReport() ErrorReport {
	r := ErrorReport{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   e.Details,
	}
	if e.Cause != nil {
		r.Cause = e.Cause.Error()
	}
	return r
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
