package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want %s", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %s, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != DefaultSQLitePath {
		t.Errorf("Storage.Path = %s, want %s", cfg.Storage.Path, DefaultSQLitePath)
	}
	if cfg.Auth.AdminUsername != DefaultAdminUsername {
		t.Errorf("Auth.AdminUsername = %s, want %s", cfg.Auth.AdminUsername, DefaultAdminUsername)
	}
	if cfg.Auth.TokenTTL.Duration() != DefaultTokenTTL {
		t.Errorf("Auth.TokenTTL = %s, want %s", cfg.Auth.TokenTTL.Duration(), DefaultTokenTTL)
	}
	if len(cfg.Content.PinnedArticles) != 2 {
		t.Errorf("Content.PinnedArticles = %v, want %v", cfg.Content.PinnedArticles, DefaultPinnedArticles)
	}
}

func TestPinnedArticles(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"absent uses defaults", "version: 1\n", 2},
		{"explicit empty disables", "content:\n  pinned_articles: []\n", 0},
		{"explicit list", "content:\n  pinned_articles: [\"3\"]\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, _, err := LoadFromPath(path)
			if err != nil {
				t.Fatalf("LoadFromPath() error: %v", err)
			}
			if got := len(cfg.Content.PinnedArticles); got != tt.want {
				t.Errorf("len(PinnedArticles) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:9090"
	cfg.Storage.Backend = "redis"
	cfg.Storage.RedisURL = "redis://localhost:6379/2"
	cfg.Import.WatchPath = "/srv/tooldir/import.json"
	cfg.Import.Debounce = Duration(2 * time.Second)

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Server.Addr = %s, want 127.0.0.1:9090", loaded.Server.Addr)
	}
	if loaded.Storage.RedisURL != "redis://localhost:6379/2" {
		t.Errorf("Storage.RedisURL = %s", loaded.Storage.RedisURL)
	}
	if loaded.Import.Debounce.Duration() != 2*time.Second {
		t.Errorf("Import.Debounce = %s, want 2s", loaded.Import.Debounce.Duration())
	}

	opts := loaded.StorageOptions()
	if opts.Backend != "redis" || opts.RedisURL != loaded.Storage.RedisURL {
		t.Errorf("StorageOptions() = %+v", opts)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFromPath() should fail for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() should fail for malformed YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TOOLDIR_ADDR":            ":9999",
		"TOOLDIR_STORAGE_BACKEND": "memory",
		"TOOLDIR_JWT_SECRET":      "s3cret",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %s, want :9999", cfg.Server.Addr)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %s, want memory", cfg.Storage.Backend)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("Auth.JWTSecret = %s, want s3cret", cfg.Auth.JWTSecret)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unset variable changed Log.Level to %s", cfg.Log.Level)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := DefaultConfig().Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}

	// Explicit path doesn't exist, should fall back to XDG
	xdg := filepath.Join(tmpDir, "xdg")
	xdgPath := filepath.Join(xdg, ConfigDirName, "config.yaml")
	if err := DefaultConfig().Save(xdgPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, filepath.Join(tmpDir, "nonexistent.yaml"))
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(tmpDir)
	if found := FindConfigPath(); found != xdgPath {
		t.Errorf("FindConfigPath() = %s, want %s", found, xdgPath)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
