package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for completion requests
var (
	// ErrBackendUnavailable means the request never completed (connection refused, timeout)
	ErrBackendUnavailable = errors.New("completion backend unavailable")

	// ErrMalformedResponse means the reply lacked the expected text or shape
	ErrMalformedResponse = errors.New("malformed completion response")
)

// maxErrorBody caps how much of a failed response body is kept
const maxErrorBody = 2048

// BackendError is a non-success HTTP status from the backend
type BackendError struct {
	Backend    string
	StatusCode int
	Message    string // extracted error message, if the body had one
	Body       string // raw response body, truncated
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if msg == "" {
		return fmt.Sprintf("%s API error: status %d", e.Backend, e.StatusCode)
	}
	return fmt.Sprintf("%s API error: status %d: %s", e.Backend, e.StatusCode, msg)
}

func newBackendError(backend string, status int, message string, body []byte) *BackendError {
	b := string(body)
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody] + "...[truncated]"
	}
	return &BackendError{Backend: backend, StatusCode: status, Message: message, Body: b}
}

func unavailable(backend string, err error) error {
	return fmt.Errorf("%s: %w: %w", backend, ErrBackendUnavailable, err)
}

func malformed(backend, detail string) error {
	return fmt.Errorf("%s: %w: %s", backend, ErrMalformedResponse, detail)
}
