package bsky

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// defaultHandleSuffix is appended to bare handles that carry no domain.
const defaultHandleSuffix = ".bsky.social"

// FormatHandle normalizes a user-supplied handle for API use: a leading
// "@" is stripped and the default domain suffix is appended when the
// handle contains no ".". Pure; applied to every handle before use.
func FormatHandle(handle string) string {
	handle = strings.TrimPrefix(handle, "@")
	if !strings.Contains(handle, ".") {
		handle += defaultHandleSuffix
	}
	return handle
}

// Login exchanges credentials for a session token. Empty arguments fall
// back to the credentials the client was configured with. Any failure is
// reported as an *AuthError.
func (c *Client) Login(ctx context.Context, identifier, password string) error {
	if identifier == "" {
		identifier = c.identifier
	}
	if password == "" {
		password = c.password
	}
	if identifier == "" || password == "" {
		return &AuthError{Err: ErrNoCredentials}
	}

	payload := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	var result struct {
		AccessJWT string `json:"accessJwt"`
		DID       string `json:"did"`
		Handle    string `json:"handle"`
	}
	if err := c.postJSON(ctx, "createSession", createSessionPath, payload, &result); err != nil {
		return &AuthError{Err: err}
	}
	if result.AccessJWT == "" {
		return &AuthError{Err: errors.New("no access token in response")}
	}

	c.mu.Lock()
	c.session = &Session{
		AccessJWT: result.AccessJWT,
		DID:       result.DID,
		Handle:    result.Handle,
	}
	c.mu.Unlock()

	slog.Info("authenticated with bluesky", "handle", result.Handle, "did", result.DID)
	return nil
}

// EnsureAuthenticated logs in with the configured credentials unless a
// session already exists. Idempotent; concurrent callers share a single
// login exchange.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	if c.Authenticated() {
		return nil
	}
	_, err, _ := c.loginGroup.Do("login", func() (any, error) {
		if c.Authenticated() {
			return nil, nil
		}
		return nil, c.Login(ctx, "", "")
	})
	return err
}
