package auth

import (
	"sync"

	"github.com/CrestNiraj12/terminalsky/domain"
)

// SessionStore holds the session of one adapter instance. Login overwrites
// it; every session-scoped call reads it.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.Session
}

// NewSessionStore creates an empty store. Calls fail closed until Set.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Set replaces the current session.
func (s *SessionStore) Set(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
}

// Clear drops the current session.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Session returns a copy of the current session.
func (s *SessionStore) Session() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil || s.session.AccessJwt == "" {
		return domain.Session{}, false
	}
	return *s.session, true
}

// AccessToken returns the bearer token or domain.ErrUnauthenticated.
func (s *SessionStore) AccessToken() (string, error) {
	sess, ok := s.Session()
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return sess.AccessJwt, nil
}
