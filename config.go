package cursorlet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	defaults "github.com/Paranoid-AF/cursorlet/default"
)

// Config represents the user's cursorlet configuration.
type Config struct {
	Version int           `json:"version"`
	Context ContextConfig `json:"context"`
	Content ContentConfig `json:"content"`
	Request RequestConfig `json:"request"`
	Cache   CacheConfig   `json:"cache"`
}

// ContextConfig holds limits for auxiliary context forwarded with a task.
type ContextConfig struct {
	MaxBytes int `json:"max_bytes,omitempty"`
}

// ContentConfig holds limits for the text around the cursor.
type ContentConfig struct {
	MaxChars int `json:"max_chars,omitempty"`
}

// RequestConfig holds daemon request limits.
type RequestConfig struct {
	MaxBodyBytes int `json:"max_body_bytes,omitempty"`
}

// CacheConfig holds settings for the daemon response cache.
type CacheConfig struct {
	TTLSeconds int   `json:"ttl_seconds,omitempty"`
	Capacity   int   `json:"capacity,omitempty"`
	Disabled   *bool `json:"disabled,omitempty"`
}

// ConfigDir returns the config directory path.
// Resolution order: $CURSORLET_CONFIG_DIR > $XDG_CONFIG_HOME/cursorlet > ~/.config/cursorlet
func ConfigDir() string {
	if dir := os.Getenv("CURSORLET_CONFIG_DIR"); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "cursorlet")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", "cursorlet-config")
	}
	return filepath.Join(home, ".config", "cursorlet")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// DefaultConfig returns the default configuration from the embedded default_config.json.
func DefaultConfig() *Config {
	var cfg Config
	if err := json.Unmarshal(defaults.DefaultConfigJSON, &cfg); err != nil {
		panic("cursorlet: invalid embedded default_config.json: " + err.Error())
	}
	return &cfg
}

// LoadConfig loads config from disk or returns defaults if not found.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(ConfigPath())
}

// LoadConfigFile loads config from path, filling missing fields from defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}
	if cfg.Context.MaxBytes == 0 {
		cfg.Context.MaxBytes = defaults.Context.MaxBytes
	}
	if cfg.Content.MaxChars == 0 {
		cfg.Content.MaxChars = defaults.Content.MaxChars
	}
	if cfg.Request.MaxBodyBytes == 0 {
		cfg.Request.MaxBodyBytes = defaults.Request.MaxBodyBytes
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = defaults.Cache.TTLSeconds
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = defaults.Cache.Capacity
	}
	if cfg.Cache.Disabled == nil {
		cfg.Cache.Disabled = defaults.Cache.Disabled
	}

	return &cfg, nil
}

// ValidateConfig checks configuration for potential issues and returns warnings.
func ValidateConfig(cfg *Config) []string {
	var warnings []string
	if cfg == nil {
		return warnings
	}
	if cfg.Context.MaxBytes < 0 {
		warnings = append(warnings, "context.max_bytes is negative; every context item will be dropped")
	}
	if cfg.Content.MaxChars < 0 {
		warnings = append(warnings, "content.max_chars is negative; cursor content will be forwarded untrimmed")
	}
	if cfg.Request.MaxBodyBytes > 0 && cfg.Context.MaxBytes > cfg.Request.MaxBodyBytes {
		warnings = append(warnings, "context.max_bytes exceeds request.max_body_bytes; the context budget can never be reached")
	}
	if cfg.Cache.TTLSeconds < 0 {
		warnings = append(warnings, "cache.ttl_seconds is negative; responses will not be cached")
	}
	return warnings
}

// ResolveContextMaxBytes returns the context byte budget.
// Priority: $CURSORLET_CONTEXT_MAX_BYTES env > config value.
func ResolveContextMaxBytes(cfg *Config) int {
	if n, ok := envInt("CURSORLET_CONTEXT_MAX_BYTES"); ok {
		return n
	}
	if cfg != nil {
		return cfg.Context.MaxBytes
	}
	return 0
}

// ResolveContentMaxChars returns the cursor content character cap.
// Priority: $CURSORLET_CONTENT_MAX_CHARS env > config value.
func ResolveContentMaxChars(cfg *Config) int {
	if n, ok := envInt("CURSORLET_CONTENT_MAX_CHARS"); ok {
		return n
	}
	if cfg != nil {
		return cfg.Content.MaxChars
	}
	return 0
}

// ResolveMaxBodyBytes returns the largest request line the daemon accepts.
// Priority: $CURSORLET_MAX_BODY_BYTES env > config value.
func ResolveMaxBodyBytes(cfg *Config) int {
	if n, ok := envInt("CURSORLET_MAX_BODY_BYTES"); ok {
		return n
	}
	if cfg != nil {
		return cfg.Request.MaxBodyBytes
	}
	return 0
}

// CacheTTL returns the response cache TTL, or zero when caching is off.
func CacheTTL(cfg *Config) time.Duration {
	if cfg == nil || cfg.Cache.TTLSeconds <= 0 {
		return 0
	}
	if cfg.Cache.Disabled != nil && *cfg.Cache.Disabled {
		return 0
	}
	return time.Duration(cfg.Cache.TTLSeconds) * time.Second
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
