package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned by every façade operation that did not succeed.
// Message is the backend-supplied message when the operation reports one,
// otherwise the fixed per-operation fallback.
type APIError struct {
	Resource   string
	Action     string
	StatusCode int    // zero when no response was received
	Message    string // what callers should show
	Detail     string // backend "error" field, when present
	Err        error  // transport or decoding cause
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether the backend rejected the bearer token.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is an APIError for a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// ValidationError reports a payload that could not be brought into the
// client's typed shape, or generation params that may not be sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
