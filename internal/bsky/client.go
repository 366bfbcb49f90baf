package bsky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Config holds client construction parameters.
type Config struct {
	// Host is the PDS entrypoint; DefaultHost when empty.
	Host string

	// Identifier and Password are the login credentials used by
	// EnsureAuthenticated. Both may be empty; data fetches then fail
	// until Login is called with explicit credentials.
	Identifier string
	Password   string

	// Timeout bounds every API call. Defaults to 30s.
	Timeout time.Duration

	// HTTPClient overrides the default client; used by tests.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
}

// Client is a Bluesky API client bound to at most one session. Session
// state is written once on successful login and read-checked before every
// call; mutation is guarded so concurrent callers cannot race a login.
type Client struct {
	host       string
	identifier string
	password   string
	httpClient *http.Client

	mu      sync.Mutex
	session *Session

	loginGroup singleflight.Group
}

// NewClient creates a Bluesky client. No network activity happens until
// Login or a data fetch.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{
		host:       cfg.Host,
		identifier: cfg.Identifier,
		password:   cfg.Password,
		httpClient: cfg.HTTPClient,
	}
}

// Authenticated reports whether a login has succeeded.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// HasCredentials reports whether the client was configured with login
// credentials.
func (c *Client) HasCredentials() bool {
	return c.identifier != "" && c.password != ""
}

// Session returns a copy of the current session, or nil before login.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Client) currentToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return "", false
	}
	return c.session.AccessJWT, true
}

// doGET issues one authenticated GET and decodes the JSON response into
// out. Non-2xx responses become an *APIError.
func (c *Client) doGET(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	token, ok := c.currentToken()
	if !ok {
		return ErrNotAuthenticated
	}

	u := c.host + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Body: truncate(body, 200)}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%s: decoding response: %w", endpoint, err)
		}
	}
	return nil
}

// Profile fetches a user profile.
func (c *Client) Profile(ctx context.Context, handle string) (*Profile, error) {
	q := url.Values{}
	q.Set("actor", FormatHandle(handle))

	var profile Profile
	if err := c.doGET(ctx, "getProfile", getProfilePath, q, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AuthorFeed fetches a user's recent posts, newest first.
func (c *Client) AuthorFeed(ctx context.Context, handle string, limit int) (*Feed, error) {
	q := url.Values{}
	q.Set("actor", FormatHandle(handle))
	q.Set("limit", strconv.Itoa(clampPageSize(limit)))

	var feed Feed
	if err := c.doGET(ctx, "getAuthorFeed", getAuthorFeedPath, q, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// SearchPosts searches posts by keyword.
func (c *Client) SearchPosts(ctx context.Context, query string, limit int) ([]PostView, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(clampPageSize(limit)))

	var results PostSearchResults
	if err := c.doGET(ctx, "searchPosts", searchPostsPath, q, &results); err != nil {
		return nil, err
	}
	return results.Posts, nil
}

// SearchActors searches users by keyword. Results are returned as raw
// records in the upstream shape.
func (c *Client) SearchActors(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(clampPageSize(limit)))

	var results actorSearchResults
	if err := c.doGET(ctx, "searchActors", searchActorsPath, q, &results); err != nil {
		return nil, err
	}
	return results.Actors, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Body: truncate(respBody, 200)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s: decoding response: %w", endpoint, err)
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
