// Package config provides configuration management for tooldir.
//
// The config file holds process settings (listener, storage backend, logging,
// credentials). Directory content lives in the store and never in the file.
//
// Config file locations (priority order) are listed by SearchPaths. Values
// from the file may be overridden by TOOLDIR_* environment variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"tooldir/internal/storage"
)

// Defaults applied to missing settings
const (
	DefaultAddr          = ":8080"
	DefaultSQLitePath    = "./tooldir.db"
	DefaultAdminUsername = "admin"
	DefaultTokenTTL      = 24 * time.Hour
)

// DefaultPinnedArticles are the seed articles restored when missing
var DefaultPinnedArticles = []string{"7", "15"}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(15 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = storage.BackendSQLite
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultSQLitePath
	}
	if c.Storage.BusyTimeout == 0 {
		c.Storage.BusyTimeout = Duration(5 * time.Second)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "json"
	}

	if c.Auth.AdminUsername == "" {
		c.Auth.AdminUsername = DefaultAdminUsername
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = Duration(DefaultTokenTTL)
	}

	// nil means the key was absent; an explicit empty list is kept
	if c.Content.PinnedArticles == nil {
		c.Content.PinnedArticles = slices.Clone(DefaultPinnedArticles)
	}

	if c.Import.Debounce == 0 {
		c.Import.Debounce = Duration(500 * time.Millisecond)
	}
}

// ApplyEnv overrides settings from TOOLDIR_* variables read through getenv
func (c *Config) ApplyEnv(getenv func(string) string) {
	overrides := []struct {
		name   string
		target *string
	}{
		{"TOOLDIR_ADDR", &c.Server.Addr},
		{"TOOLDIR_STORAGE_BACKEND", &c.Storage.Backend},
		{"TOOLDIR_STORAGE_PATH", &c.Storage.Path},
		{"TOOLDIR_REDIS_URL", &c.Storage.RedisURL},
		{"TOOLDIR_LOG_LEVEL", &c.Log.Level},
		{"TOOLDIR_ADMIN_PASSWORD_HASH", &c.Auth.AdminPasswordHash},
		{"TOOLDIR_JWT_SECRET", &c.Auth.JWTSecret},
		{"TOOLDIR_IMPORT_WATCH_PATH", &c.Import.WatchPath},
	}
	for _, o := range overrides {
		if v := getenv(o.name); v != "" {
			*o.target = v
		}
	}
}

// StorageOptions converts the storage section for storage.Open
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:     c.Storage.Backend,
		SQLitePath:  c.Storage.Path,
		BusyTimeout: c.Storage.BusyTimeout.Duration(),
		RedisURL:    c.Storage.RedisURL,
		RedisPrefix: c.Storage.RedisPrefix,
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	target := c.Storage.Path
	if c.Storage.Backend == storage.BackendRedis {
		target = c.Storage.RedisURL
	}
	summary := fmt.Sprintf("Listen: %s, Storage: %s (%s)\n", c.Server.Addr, c.Storage.Backend, target)
	summary += fmt.Sprintf("Log: %s/%s, Token TTL: %s", c.Log.Level, c.Log.Encoding, c.Auth.TokenTTL.Duration())
	if c.Import.WatchPath != "" {
		summary += fmt.Sprintf(", Watching: %s", c.Import.WatchPath)
	}
	return summary
}
