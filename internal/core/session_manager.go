package core

import (
	"sync"

	"github.com/bitefinder/server/internal/domain"
)

// SessionManager owns the group-code → session map, the only structure
// shared across groups. Sessions for different groups never contend.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[domain.GroupCode]*GroupSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[domain.GroupCode]*GroupSession)}
}

func (m *SessionManager) GetOrCreate(code domain.GroupCode) *GroupSession {
	m.mu.RLock()
	s, ok := m.sessions[code]
	m.mu.RUnlock()
	if ok {
		return s
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[code]; ok {
		return s
	}
	s = NewGroupSession(code)
	m.sessions[code] = s
	return s
}

func (m *SessionManager) Get(code domain.GroupCode) (*GroupSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[code]
	return s, ok
}

// Evict drops a dissolved group's session. The store keeps the group
// row as inactive, so the code is never reissued to a different group.
func (m *SessionManager) Evict(code domain.GroupCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, code)
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
