package redgifs

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	userAgent     string
	proxyURL      string
	proxyUsername string
	proxyPassword string
}

// WithBaseURL overrides the API base URL. Mainly useful for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient supplies a caller-owned network session to reuse
// connections. The client will not close it on Close.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string. The media endpoints reject
// requests without one.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithProxy routes every request through the given proxy for the lifetime
// of the client, including requests over a caller-supplied session (the
// session itself is left unmodified). A supplied session with a custom
// RoundTripper that is not an *http.Transport cannot be rerouted and makes
// NewClient fail. Username and password may be empty for an open proxy.
func WithProxy(proxyURL, username, password string) Option {
	return func(o *clientOptions) {
		o.proxyURL = proxyURL
		o.proxyUsername = username
		o.proxyPassword = password
	}
}
