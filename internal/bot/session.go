package bot

import "sync"

// Session is per-chat UI state: the transactions page the chat is looking at.
// State lives here, owned by the Bot, instead of package-level maps.
type Session struct {
	TxPage int
}

// SessionStore is a concurrency-safe map of chat id to session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get returns the chat's session, creating it on first access.
func (s *SessionStore) Get(chatID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[chatID]; ok {
		return sess
	}
	sess = &Session{TxPage: 1}
	s.sessions[chatID] = sess
	return sess
}

// Reset drops the chat's session.
func (s *SessionStore) Reset(chatID int64) {
	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()
}
