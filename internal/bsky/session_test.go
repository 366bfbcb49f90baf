package bsky

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHandle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice.bsky.social"},
		{"@alice", "alice.bsky.social"},
		{"alice.bsky.social", "alice.bsky.social"},
		{"@alice.bsky.social", "alice.bsky.social"},
		{"alice.example.com", "alice.example.com"},
		{"", ".bsky.social"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHandle(tt.in), "FormatHandle(%q)", tt.in)
	}
}

func TestLogin(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/xrpc/com.atproto.server.createSession", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{
			"accessJwt": "jwt-token",
			"did":       "did:plc:xyz",
			"handle":    "alice.bsky.social",
		})
	}))
	defer srv.Close()

	c := NewClient(Config{Host: srv.URL, Identifier: "alice.bsky.social", Password: "hunter2"})
	require.False(t, c.Authenticated())

	require.NoError(t, c.Login(context.Background(), "", ""))
	assert.Equal(t, "alice.bsky.social", gotBody["identifier"])
	assert.Equal(t, "hunter2", gotBody["password"])

	require.True(t, c.Authenticated())
	sess := c.Session()
	require.NotNil(t, sess)
	assert.Equal(t, "jwt-token", sess.AccessJWT)
	assert.Equal(t, "did:plc:xyz", sess.DID)
}

func TestLogin_ExplicitCredentialsOverrideConfigured(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"accessJwt": "t", "did": "d", "handle": "h"})
	}))
	defer srv.Close()

	c := NewClient(Config{Host: srv.URL, Identifier: "configured", Password: "configured-pw"})
	require.NoError(t, c.Login(context.Background(), "other.bsky.social", "other-pw"))
	assert.Equal(t, "other.bsky.social", gotBody["identifier"])
	assert.Equal(t, "other-pw", gotBody["password"])
}

func TestLogin_NoCredentials(t *testing.T) {
	c := NewClient(Config{Host: "http://unused.invalid"})
	err := c.Login(context.Background(), "", "")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.False(t, c.Authenticated())
}

func TestLogin_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"AuthenticationRequired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{Host: srv.URL})
	err := c.Login(context.Background(), "alice", "wrong")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, c.Authenticated())
}

func TestLogin_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"did": "did:plc:xyz"})
	}))
	defer srv.Close()

	c := NewClient(Config{Host: srv.URL})
	err := c.Login(context.Background(), "alice", "pw")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, c.Authenticated())
}

func TestEnsureAuthenticated_SingleLogin(t *testing.T) {
	var logins int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		logins++
		mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"accessJwt": "t", "did": "d", "handle": "h"})
	}))
	defer srv.Close()

	c := NewClient(Config{Host: srv.URL, Identifier: "alice", Password: "pw"})
	require.NoError(t, c.EnsureAuthenticated(context.Background()))
	require.NoError(t, c.EnsureAuthenticated(context.Background()))
	assert.Equal(t, 1, logins)
}
