package client

import (
	"net/http"
	"sync"

	"portfolio/internal/model"
)

// Session holds the admin credential of one API client. It is passed
// explicitly to the client that uses it; nothing is kept in globals.
type Session struct {
	mu    sync.RWMutex
	token string
	admin *model.AdminIdentity
}

// NewSession returns a session, optionally pre-seeded with a token.
func NewSession(token string) *Session {
	return &Session{token: token}
}

// Token returns the bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Admin returns the admin the session belongs to, if known.
func (s *Session) Admin() *model.AdminIdentity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// Set stores a freshly issued token.
func (s *Session) Set(token string, admin *model.AdminIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.admin = admin
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.Set("", nil)
}

// authTransport adds the session's bearer token to outgoing requests and
// clears the session when the server rejects it.
type authTransport struct {
	session *Session
	base    http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.session.Token()
	if token != "" && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		t.session.Clear()
	}
	return resp, nil
}
