package storage

import (
	"context"
	"sync"
)

// Memory is a key-value store that lives only as long as the process does.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns a new, empty in-memory key-value store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under the given key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set stores a value under the given key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close is a no-op for in-memory stores.
func (m *Memory) Close() error {
	return nil
}
