// Package memory provides an in-process key/value store used by tests
// and local development.
package memory

import (
	"context"
	"sync"
)

// KVStore is a thread-safe in-memory implementation of
// ports.KeyValueStore.
type KVStore struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

// NewKVStore creates an empty in-memory store.
func NewKVStore() *KVStore {
	return &KVStore{items: make(map[string]map[string]string)}
}

func (s *KVStore) Get(ctx context.Context, owner, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.items[owner]
	if !ok {
		return "", false, nil
	}
	value, ok := fields[key]
	return value, ok, nil
}

func (s *KVStore) Put(ctx context.Context, owner, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.items[owner]
	if !ok {
		fields = make(map[string]string)
		s.items[owner] = fields
	}
	fields[key] = value
	return nil
}

func (s *KVStore) DeleteOwner(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, owner)
	return nil
}
