package bsky

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredentials indicates no identifier/password is configured.
	ErrNoCredentials = errors.New("bluesky credentials not configured")

	// ErrNotAuthenticated indicates a data fetch was attempted before login.
	ErrNotAuthenticated = errors.New("not authenticated: login required")

	// ErrNoContent indicates post text extraction yielded nothing to analyze.
	// Distinct from a network error: the fetch succeeded but the feed holds
	// no usable text.
	ErrNoContent = errors.New("no post text found")
)

// AuthError reports a failed login exchange: missing credentials or an
// upstream rejection.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("bluesky authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the Bluesky API.
type APIError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s HTTP %d: %s", e.Endpoint, e.Status, e.Body)
}
