package project

import (
	"context"
	"sync"
	"time"
)

// Store holds live sessions. Implementations are ephemeral by design: the
// memory store is swept by the manager, the Redis store relies on key TTLs.
// Get and ExpiredIDs must be safe to call concurrently with Put/Delete;
// per-session write serialization is the manager's job, not the store's.
type Store interface {
	Put(ctx context.Context, s *Session) error
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*Session, error)
	// Delete is idempotent: deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
	// ExpiredIDs lists sessions whose retention window has passed. Stores
	// that expire keys natively may return nothing.
	ExpiredIDs(ctx context.Context, now time.Time) ([]string, error)
	Kind() string
}

// MemoryStore is the default in-process Store: a mutex-guarded map handing
// out clones so readers never share slices with a mutation in flight.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) ExpiredIDs(_ context.Context, now time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MemoryStore) Kind() string { return "memory" }
