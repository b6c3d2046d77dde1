// internal/store/memory.go
//
// In-memory store for live solver sessions and games.
//
// Characteristics:
//   - Values keyed by a random UUID string.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown IDs.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown IDs.
var ErrNotFound = errors.New("store: not found")

// Store persists values of one kind by ID.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store[T any] interface {
	// Create stores v under a fresh ID and returns the ID.
	Create(ctx context.Context, v T) (string, error)

	// Get retrieves a value by ID.
	Get(ctx context.Context, id string) (T, error)

	// Delete removes a value; unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many values are held.
	Len() int
}

type memory[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore[T any]() Store[T] {
	return &memory[T]{items: make(map[string]T)}
}

func (m *memory[T]) Create(ctx context.Context, v T) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	return id, nil
}

func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

func (m *memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
