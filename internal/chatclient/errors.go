package chatclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidArgument is returned, wrapped, when a call is rejected before any
// request is sent.
var ErrInvalidArgument = errors.New("invalid argument")

// TransportError means no response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError is a 401 or 403 response.
type AuthError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: not authorized (status %d): %s", e.Op, e.StatusCode, e.Body)
}

// NotFoundError is a 404 on a call that addresses a specific resource.
type NotFoundError struct {
	Op   string
	Body string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found: %s", e.Op, e.Body)
}

// ServerError is a 5xx response.
type ServerError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server error (status %d): %s", e.Op, e.StatusCode, e.Body)
}

// StatusError is any other non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// DecodeError means the response body did not have the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StreamError is a streamed reply that failed after it started. Received
// counts the bytes delivered before the failure.
type StreamError struct {
	Received int64
	Err      error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream interrupted after %d bytes: %v", e.Received, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

const maxErrorBody = 512

// statusError maps a non-2xx response to its typed error. resourceScoped
// calls report 404 as NotFoundError.
func statusError(op string, code int, body []byte, resourceScoped bool) error {
	msg := string(body)
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &AuthError{Op: op, StatusCode: code, Body: msg}
	case code == http.StatusNotFound && resourceScoped:
		return &NotFoundError{Op: op, Body: msg}
	case code >= 500:
		return &ServerError{Op: op, StatusCode: code, Body: msg}
	default:
		return &StatusError{Op: op, StatusCode: code, Body: msg}
	}
}
