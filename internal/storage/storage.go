// Package storage defines the key-value store that every collection is
// persisted to. A Store holds one string value per key and has no notion of
// partial updates: writers replace the whole value and the last writer wins.
//
// Three backends are provided:
//
//   - sqlite: a single kv table in an embedded SQLite database (default)
//   - redis: one Redis string per key under a configurable prefix
//   - memory: a process-local map, used by tests and throwaway runs
package storage

import (
	"context"
)

// Store is a flat string key-value store
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written or has been removed.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set overwrites the value stored under key
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists every key currently stored, sorted
	Keys(ctx context.Context) ([]string, error)
	// Close releases resources
	Close() error
}
