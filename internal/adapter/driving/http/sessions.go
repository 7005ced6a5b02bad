package http

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Session is one live call-manager connection.
type Session struct {
	ID   string
	conn *websocket.Conn
}

func (s *Session) Close() error {
	return s.conn.Close()
}

// SessionManager tracks live manager connections so shutdown can close
// them all.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[*Session]bool
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[*Session]bool)}
}

func (m *SessionManager) Register(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s] = true
	log.Info().Int("count", len(m.sessions)).Str("session_id", s.ID).Msg("manager session registered")
}

func (m *SessionManager) Unregister(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s]; ok {
		delete(m.sessions, s)
		log.Info().Int("count", len(m.sessions)).Str("session_id", s.ID).Msg("manager session unregistered")
	}
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Stop closes every live manager connection.
func (m *SessionManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for s := range m.sessions {
		if err := s.Close(); err != nil {
			log.Error().Err(err).Str("session_id", s.ID).Msg("error closing manager session")
		}
		delete(m.sessions, s)
	}
}
