package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a map-backed Storage. It is used by tests and by the
// "memory" driver for throwaway sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
	hub  *Hub
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
		hub:  NewHub(),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()

	m.hub.Publish(key)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	_, existed := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()

	if existed {
		m.hub.Publish(key)
	}
	return nil
}

func (m *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := []string{}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Watch(key string, fn WatchFunc) func() {
	return m.hub.Watch(key, fn)
}

func (m *MemoryStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var size int64
	for k, v := range m.data {
		size += int64(len(k) + len(v))
	}
	return &Stats{Driver: "memory", TotalKeys: int64(len(m.data)), SizeBytes: size}, nil
}

func (m *MemoryStore) Close() error { return nil }
