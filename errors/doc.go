// Package errors provides the structured error type used across procout.
// Errors carry a machine-readable code, a human-readable message, retryable
// detection and optional details about the process involved.
package errors
