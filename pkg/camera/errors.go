package camera

import (
	"errors"
	"fmt"
)

// Sentinel errors for the camera package.
var (
	// ErrUnreachable indicates the camera server could not be contacted.
	ErrUnreachable = errors.New("camera: server unreachable")

	// ErrNotFound indicates the requested media file does not exist.
	ErrNotFound = errors.New("camera: media not found")

	// ErrRejected indicates the server refused the operation
	// (e.g. starting a recording that is already running).
	ErrRejected = errors.New("camera: operation rejected")

	// ErrBadResponse indicates the server returned a body that could not
	// be decoded.
	ErrBadResponse = errors.New("camera: malformed response")
)

// APIError represents a non-success HTTP response from the camera server.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the human-readable error message, if the server sent one.
	Message string

	// Retryable indicates if the request can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("camera: API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("camera: API error (HTTP %d)", e.StatusCode)
}

// IsRetryable returns true if the error can be retried.
func (e *APIError) IsRetryable() bool {
	return e.Retryable
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Retryable:  statusCode == 429 || statusCode >= 500,
	}
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRetryable returns true if the request that produced err can be retried.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}
	return errors.Is(err, ErrUnreachable)
}
