package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Content ContentConfig `yaml:"content"`
	Import  ImportConfig  `yaml:"import"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins,omitempty"`
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Backend     string   `yaml:"backend"` // sqlite, redis, memory
	Path        string   `yaml:"path"`
	BusyTimeout Duration `yaml:"busy_timeout"`
	RedisURL    string   `yaml:"redis_url,omitempty"`
	RedisPrefix string   `yaml:"redis_prefix,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // json or console
}

// AuthConfig holds administrator credentials and token settings
type AuthConfig struct {
	AdminUsername     string   `yaml:"admin_username"`
	AdminPasswordHash string   `yaml:"admin_password_hash,omitempty"` // bcrypt
	JWTSecret         string   `yaml:"jwt_secret,omitempty"`
	TokenTTL          Duration `yaml:"token_ttl"`
	BcryptCost        int      `yaml:"bcrypt_cost,omitempty"`
}

// ContentConfig tunes repository behaviour
type ContentConfig struct {
	// PinnedArticles are seed articles restored whenever they go missing.
	// Absent means the defaults; an empty list disables the repair.
	PinnedArticles []string `yaml:"pinned_articles"`
	ResetPassword  string   `yaml:"reset_password,omitempty"`
}

// ImportConfig enables importing a watched file on change
type ImportConfig struct {
	WatchPath string   `yaml:"watch_path,omitempty"`
	Debounce  Duration `yaml:"debounce"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
