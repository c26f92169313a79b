// Package session holds per-client login state in memory, keyed by a
// UUID cookie. Sessions live until explicit logout or process restart;
// there is no expiry.
package session

import (
	"sync"

	"github.com/google/uuid"

	"skillboard/internal/auth"
)

// Session is one client's state machine: LoggedOut until a successful
// login, then one of the role views until logout. Logging out clears
// these fields but never touches the dataset.
type Session struct {
	ID            string
	Authenticated bool
	Email         string
	Role          auth.Role
	DisplayName   string
}

// Store is an in-memory session registry safe for concurrent handlers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for an ID, or nil when unknown.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Create registers a fresh logged-out session and returns it.
func (s *Store) Create() *Session {
	sess := &Session{ID: uuid.NewString()}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Login transitions a session to an authenticated role view.
func (s *Store) Login(id string, result auth.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	sess.Authenticated = true
	sess.Email = result.Email
	sess.Role = result.Role
	sess.DisplayName = result.DisplayName
}

// Logout clears every session field, returning the client to LoggedOut.
func (s *Store) Logout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	sess.Authenticated = false
	sess.Email = ""
	sess.Role = ""
	sess.DisplayName = ""
}

// Count returns the number of known sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
