package advisor

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("advisor: API key required")

	// ErrThrottled is returned when a request arrives before the
	// minimum interval since the last remote call has elapsed.
	ErrThrottled = errors.New("advisor: throttled")

	// ErrQuotaExhausted is returned when the daily call budget is
	// spent. It resets at local midnight.
	ErrQuotaExhausted = errors.New("advisor: daily quota exhausted")

	// ErrEmptyResponse is returned when the model answers with no
	// usable text.
	ErrEmptyResponse = errors.New("advisor: empty model response")
)

// APIError represents an error response from the model API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("advisor: API error %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.IsRateLimited() || e.IsServerError()
}
