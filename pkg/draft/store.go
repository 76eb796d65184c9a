package draft

import (
	"errors"
	"sync"
)

// ErrNotFound signals a read of a key no draft was saved under.
var ErrNotFound = errors.New("draft: not found")

// Store is the persistence port for serialized draft records. Reads of
// absent keys return ErrNotFound; writes replace any prior value.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Delete(key string) error
}

// MemoryStore keeps drafts in process memory, the transient per-session
// equivalent of browser session storage. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// Read returns a copy of the stored bytes for key, or ErrNotFound.
func (m *MemoryStore) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of data under key, replacing any prior value.
func (m *MemoryStore) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.items[key] = stored
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Len reports how many drafts the store currently holds.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}

var _ Store = (*MemoryStore)(nil)
