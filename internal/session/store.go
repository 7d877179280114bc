// Package session owns per-conversation history. History is in-memory
// only and append-only; a session's turns are discarded with the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/madadgar-ai/madadgar/internal/domain"
)

// Store manages conversation sessions.
type Store interface {
	// GetOrCreate finds an existing session by key or creates a new one.
	GetOrCreate(key domain.SessionKey) *domain.Session

	// Get returns a session by ID, or nil if not found.
	Get(id string) *domain.Session

	// Append adds a turn to a session's history.
	Append(sessionID string, turn domain.Turn)

	// History returns a snapshot copy of a session's turns, so callers
	// can hand it to the coordinator without aliasing session state.
	History(sessionID string) []domain.Turn

	// Len returns the number of turns recorded for a session.
	Len(sessionID string) int

	// List returns all session IDs.
	List() []string
}

// MemoryStore is the in-memory Store implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session // id → session
	byKey    map[string]string          // key string → session id
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		byKey:    make(map[string]string),
	}
}

func (s *MemoryStore) GetOrCreate(key domain.SessionKey) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	keyStr := key.String()
	if id, ok := s.byKey[keyStr]; ok {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}

	sess := &domain.Session{
		ID:        uuid.New().String(),
		Key:       key,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.sessions[sess.ID] = sess
	s.byKey[keyStr] = sess.ID
	return sess
}

func (s *MemoryStore) Get(id string) *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

func (s *MemoryStore) Append(sessionID string, turn domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.Turns = append(sess.Turns, turn)
		sess.UpdatedAt = time.Now()
	}
}

func (s *MemoryStore) History(sessionID string) []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	return append([]domain.Turn(nil), sess.Turns...)
}

func (s *MemoryStore) Len(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return len(sess.Turns)
	}
	return 0
}

func (s *MemoryStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}
