package session

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidSession is returned for a turn addressed to an unknown or already
// closed session id. The caller restarts with a new session.
var ErrInvalidSession = errors.New("invalid session or session expired")

// Manager holds the live session set. Sessions leave the set when they close;
// after that only their persisted summary remains.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Start creates (or resets) the session for id and puts it at the first
// profile-collection stage.
func (m *Manager) Start(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        id,
		Stage:     StageCollectName,
		CreatedAt: time.Now(),
	}
	m.sessions[id] = s
	return s
}

// Get returns the live session for id or ErrInvalidSession.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrInvalidSession
	}
	return s, nil
}

// Remove drops id from the live set. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
