package session

import "sync"

// Store hands out one Session per visitor ID. Sessions are never shared
// across IDs; there is nothing to coordinate beyond map access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		s = New()
		st.sessions[id] = s
	}
	return s
}

// Len reports how many sessions exist.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
