package redgifs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Credential is the bearer token plus the anonymous identity fields issued
// by the temporary-auth endpoint. It is immutable once issued: a re-login
// replaces it wholesale, it is never patched in place.
type Credential struct {
	Token    string
	Addr     string
	Agent    string
	Session  string
	IssuedAt time.Time
}

// Login acquires a credential for the session. It first requests an
// anonymous temporary token; when username and password are both supplied it
// upgrades to a user-scoped token with a second request.
//
// The credential is held for the remainder of the session: there is no
// automatic refresh. A caller that hits an authentication failure mid-session
// must call Login again explicitly.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if c.isClosed() {
		return ErrClosed
	}

	cred, err := c.temporaryCredential(ctx)
	if err != nil {
		return err
	}

	if username != "" && password != "" {
		token, err := c.userToken(ctx, cred, username, password)
		if err != nil {
			return err
		}
		upgraded := *cred
		upgraded.Token = token
		upgraded.IssuedAt = time.Now()
		cred = &upgraded
	}

	c.setCredential(cred)

	c.logger.Debug().
		Bool("user_scoped", username != "" && password != "").
		Msg("Acquired API credential")

	return nil
}

// temporaryCredential performs the anonymous-session request.
func (c *Client) temporaryCredential(ctx context.Context) (*Credential, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v2/auth/temporary", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp temporaryAuthResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}

	if resp.Token == nil {
		return nil, &ParseError{Field: "token"}
	}

	cred := &Credential{
		Token:    *resp.Token,
		Session:  uuid.NewString(),
		IssuedAt: time.Now(),
	}
	if resp.Addr != nil {
		cred.Addr = *resp.Addr
	}
	if resp.Agent != nil {
		cred.Agent = *resp.Agent
	}
	if resp.Session != nil && *resp.Session != "" {
		cred.Session = *resp.Session
	}
	return cred, nil
}

// userToken upgrades a temporary credential to a user-scoped token.
func (c *Client) userToken(ctx context.Context, temp *Credential, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+temp.Token)
	agent := c.userAgent
	if temp.Agent != "" {
		agent = temp.Agent
	}
	req.Header.Set("User-Agent", agent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		var rejection authErrorResponse
		_ = json.Unmarshal(body, &rejection)
		return "", &AuthError{StatusCode: resp.StatusCode, Message: rejection.Error.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Path: req.URL.Path}
	}

	var parsed loginResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ResponseFormatError{StatusCode: resp.StatusCode, Snippet: snippet(body)}
	}

	if parsed.Token == nil {
		return "", &ParseError{Field: "token"}
	}
	return *parsed.Token, nil
}

// Credential returns the credential currently held by the client, or nil
// before the first successful Login.
func (c *Client) Credential() *Credential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred
}

func (c *Client) setCredential(cred *Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = cred
}
