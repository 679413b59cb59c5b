package redgifs

import (
	"errors"
	"fmt"
)

// Common errors returned by the RedGifs client.
var (
	// ErrNotLoggedIn is returned when a request is attempted before Login.
	ErrNotLoggedIn = errors.New("client is not logged in")

	// ErrClosed is returned when an operation is attempted on a closed client.
	ErrClosed = errors.New("client is closed")

	// ErrInvalidHost is returned when a download URL does not point at a
	// redgifs host.
	ErrInvalidHost = errors.New("not a redgifs URL")
)

// AuthError indicates the remote rejected the supplied credentials.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// RequestError indicates the request never completed: the remote host could
// not be reached at the transport level.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// HTTPError indicates a non-2xx response. The client performs no retries;
// whether to retry is the caller's decision.
type HTTPError struct {
	StatusCode int
	Path       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("redgifs API error: status %d on %s", e.StatusCode, e.Path)
}

// IsNotFound reports whether the error is a 404 response.
func (e *HTTPError) IsNotFound() bool { return e.StatusCode == 404 }

// IsUnauthorized reports whether the error is an auth rejection.
func (e *HTTPError) IsUnauthorized() bool { return e.StatusCode == 401 || e.StatusCode == 403 }

// ResponseFormatError indicates the response body was not decodable JSON.
// Snippet carries a truncated copy of the body for diagnostics.
type ResponseFormatError struct {
	StatusCode int
	Snippet    string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("undecodable response (status %d): %q", e.StatusCode, e.Snippet)
}

// ParseError indicates the body was valid JSON but a required field was
// missing. Required fields are never silently defaulted: a missing key means
// the remote schema changed and must surface.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("response is missing required field %q", e.Field)
}
