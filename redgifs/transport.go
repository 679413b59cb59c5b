package redgifs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

const snippetLimit = 256

// newRequest builds a request against the API base URL and attaches the
// current credential headers when one is held.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	c.attachHeaders(req)

	return req, nil
}

// attachHeaders applies the bearer token and anonymous identity headers held
// by the client to an outbound request.
func (c *Client) attachHeaders(req *http.Request) {
	cred := c.Credential()

	agent := c.userAgent
	if cred != nil && cred.Agent != "" {
		agent = cred.Agent
	}
	req.Header.Set("User-Agent", agent)

	if cred == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+cred.Token)
	if cred.Session != "" {
		req.Header.Set("X-Session", cred.Session)
	}
}

// send dispatches the request and decodes the JSON body into out. Non-2xx
// statuses come back as *HTTPError and undecodable bodies as
// *ResponseFormatError. No retries are performed.
func (c *Client) send(req *http.Request, out any) error {
	if c.isClosed() {
		return ErrClosed
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("Dispatching API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Path: req.URL.Path}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseFormatError{StatusCode: resp.StatusCode, Snippet: snippet(body)}
	}

	return nil
}

// get issues an authenticated GET. Every lookup and search operation goes
// through here so the bearer credential is attached uniformly.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.Credential() == nil {
		return ErrNotLoggedIn
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	return c.send(req, out)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= snippetLimit {
		return s
	}
	// Back up to a rune boundary so the snippet stays valid UTF-8.
	cut := snippetLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
