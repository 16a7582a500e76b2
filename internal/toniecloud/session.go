package toniecloud

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Session holds the bearer token and household selection for one logical
// login. It is an explicit object rather than process state so independent
// sessions can coexist; the mutex covers token and selection updates, but
// callers are expected to serialize Login against reads themselves.
type Session struct {
	clientID string

	mu        sync.RWMutex
	token     string
	household *Household
}

// NewSession creates an empty session with a fresh client identifier.
func NewSession() *Session {
	return &Session{clientID: strings.ReplaceAll(uuid.New().String(), "-", "")}
}

// ClientID returns the per-session identifier used in logs and origin tags.
func (s *Session) ClientID() string {
	return s.clientID
}

// AccessToken returns the current bearer token, or ErrNotAuthenticated when
// no login has succeeded.
func (s *Session) AccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

// Authenticated reports whether a bearer token is present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// SelectHousehold sets the household selection explicitly, overriding any
// previous value. The household is not validated against the account; the
// caller is trusted.
func (s *Session) SelectHousehold(h Household) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := h
	s.household = &copied
}

// SelectedHousehold returns the current selection, if any.
func (s *Session) SelectedHousehold() (Household, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.household == nil {
		return Household{}, false
	}
	return *s.household, true
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
