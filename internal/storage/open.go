package storage

import (
	"fmt"
	"time"

	"tooldir/internal/storage/memory"
	"tooldir/internal/storage/redis"
	"tooldir/internal/storage/sqlite"
)

// Backend names accepted by Open
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Compile-time checks that every backend satisfies Store
var (
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*redis.Store)(nil)
	_ Store = (*memory.Store)(nil)
)

// Options selects and parameterises a backend
type Options struct {
	Backend     string
	SQLitePath  string
	BusyTimeout time.Duration
	RedisURL    string
	RedisPrefix string
}

// Open creates the store named by opts.Backend
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return sqlite.New(opts.SQLitePath, opts.BusyTimeout)
	case BackendRedis:
		return redis.New(opts.RedisURL, opts.RedisPrefix)
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
