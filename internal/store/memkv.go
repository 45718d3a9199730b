package store

import (
	"context"
	"sync"
)

// MemKV is an in-memory KV backend. It exists for tests and throwaway
// sandboxes; nothing survives a restart.
type MemKV struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemKV creates an empty in-memory backend.
func NewMemKV() *MemKV {
	return &MemKV{blobs: make(map[string][]byte)}
}

// Get implements KV.
func (m *MemKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set implements KV.
func (m *MemKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.blobs[key] = stored
	return nil
}

// Delete implements KV.
func (m *MemKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

var _ KV = (*MemKV)(nil)
