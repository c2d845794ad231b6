// Package memory provides a process-local implementation of the key-value
// store used for tests and ephemeral environments.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var errClosed = errors.New("memory: store is closed")

// Store is a map guarded by a RWMutex
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// New creates an empty store
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, errClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set overwrites the value for key
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	s.values[key] = value
	return nil
}

// Remove deletes key
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	delete(s.values, key)
	return nil
}

// Keys lists stored keys in sorted order
func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errClosed
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close marks the store closed. Later calls fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
