// apps/solver/internal/store/memory.go
//
// In-memory store for interactive assist sessions.
// A player solving a real puzzle asks for a suggestion, plays it, and
// reports the colors back; the session between those calls lives here.
//
// Characteristics:
//   - Stores *solver.Session values keyed by ID in a map.
//   - Concurrency-safe: the map has its own mutex, and each session has a
//     lock of its own. Update holds only that session's lock while its
//     callback runs, so a slow ranking in one session never stalls another.
//   - State is lost when the process restarts.
//   - Errors are returned for missing session IDs.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for assist sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, id string, s *solver.Session) error

	// Update runs fn on the stored session with exclusive access.
	Update(ctx context.Context, id string, fn func(*solver.Session) error) error

	// Delete removes a session; unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.Mutex        // guards the map, not the sessions
	sessions map[string]*entry // keyed by session ID
}

// entry serializes access to one session.
type entry struct {
	mu   sync.Mutex
	sess *solver.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry)}
}

func (m *memory) Save(ctx context.Context, id string, s *solver.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &entry{sess: s}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*solver.Session) error) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
