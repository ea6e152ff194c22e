// internal/progress/memory.go
//
// In-memory implementation of the progress Store interface.
// Used in tests and for running the server without a database file.
// Honors the same optimistic-versioning contract as the SQLite store;
// state is lost when the process restarts.

package progress

import (
	"context"
	"sync"

	"github.com/wordchain/go-server/internal/game"
)

// memory is a map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	users map[string]*memEntry // keyed by user ID
}

type memEntry struct {
	progress game.Progress
	version  int64
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{users: make(map[string]*memEntry)}
}

func (m *memory) Read(ctx context.Context, userID string) (game.Progress, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.users[userID]
	if !ok {
		return game.Progress{}, 0, ErrNotFound
	}
	return e.progress.Clone(), e.version, nil
}

func (m *memory) Create(ctx context.Context, userID string, initial game.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = &memEntry{progress: initial.Clone(), version: 1}
	return nil
}

func (m *memory) WriteCompletion(ctx context.Context, userID, dayKey, tier string, points int, updated game.Progress, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	if e.version != expectedVersion {
		return ErrVersionConflict
	}
	e.progress = updated.Clone()
	e.version++
	return nil
}
