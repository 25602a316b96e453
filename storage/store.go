package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned (wrapped) by Get when no value is stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a key-value capability holding whole serialized documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

func notFound(key string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, key)
}

// MemoryStore is an in-process Store. It backs the memory storage backend and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	err  error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// NewMemoryStoreWith returns a MemoryStore seeded with a single key.
func NewMemoryStoreWith(key string, value []byte) *MemoryStore {
	s := NewMemoryStore()
	s.data[key] = append([]byte(nil), value...)
	return s
}

// NewMemoryStoreWithError returns a store whose every operation fails with err.
func NewMemoryStoreWithError(err error) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), err: err}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, notFound(key)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
