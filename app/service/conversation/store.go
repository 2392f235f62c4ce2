package conversation

import "sync"

// Store keeps live sessions keyed by chat id. Turns for one session are
// serialized upstream, the lock only guards the map across sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

func (s *Store) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]

	return session, ok
}

func (s *Store) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ChatID] = session
}

func (s *Store) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
