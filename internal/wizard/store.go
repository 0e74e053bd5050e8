package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// SessionStore holds in-flight wizard sessions. Sessions are short-lived
// working state, distinct from saved resumes; a store may expire them.
type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryStore is the in-process store used in tests and single-node runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*Session)}
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, &SessionNotFoundError{ID: id}
	}
	return s, nil
}

func (m *MemoryStore) Put(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
