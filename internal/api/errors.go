package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when no credential is set or the
	// server rejects the one presented.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when the server reports no such job.
	ErrNotFound = errors.New("job not found")
)

// APIError is a non-2xx response from the service that is neither an
// authentication nor a not-found failure.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API error: status %d", e.Status)
	}
	return fmt.Sprintf("API error: status %d: %s", e.Status, e.Detail)
}

// TransportError wraps a network-level failure: connection refused,
// timeout, or an unreadable/malformed body.
type TransportError struct {
	cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.cause)
}

func (e *TransportError) Unwrap() error {
	return e.cause
}

// errorBody is the FastAPI error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}
