package session

import "sync"

// Manager maps conversation ids to sessions, creating them lazily on
// first use. The manager is safe for concurrent use; the sessions it
// hands out are serialized by their own locks.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for a conversation id, creating it if this
// is the conversation's first interaction.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = New(id)
		m.sessions[id] = s
	}
	return s
}

// Put installs a session (e.g. one restored from an archive),
// replacing any existing session for the same conversation.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// IDs returns the ids of all live sessions.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		out = append(out, id)
	}
	return out
}
