package tracker

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a Store when nothing is stored under a key.
var ErrNotFound = errors.New("tracker: key not found")

// Store is durable key/value storage scoped by namespace. Put replaces the
// stored value wholesale.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Put(ctx context.Context, namespace, key, value string) error
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, namespace, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[namespace+"\x00"+key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Put(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[namespace+"\x00"+key] = value
	return nil
}
