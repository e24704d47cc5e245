// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for fightnight configuration.
	DefaultConfigDir = ".fightnight"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultCacheFile is the default SQLite cache file name.
	DefaultCacheFile = "cache.db"
)

// Cache backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	LLM    LLMConfig    `yaml:"llm,omitempty"`
	Cache  CacheConfig  `yaml:"cache,omitempty"`
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
	Redis  RedisConfig  `yaml:"redis,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	// Timeout bounds a single fetch request, including both LLM passes.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// LLMConfig holds configuration for the LLM provider.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	// SearchModel answers the web-search pass.
	SearchModel string `yaml:"search_model,omitempty"`
	// Model coerces search output into structured JSON.
	Model   string `yaml:"model,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	// Months is how far ahead to search for events.
	Months int `yaml:"months,omitempty"`
}

// CacheConfig holds configuration for the event cache.
type CacheConfig struct {
	Backend string        `yaml:"backend,omitempty"`
	Key     string        `yaml:"key,omitempty"`
	TTL     time.Duration `yaml:"ttl,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite cache store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the config directory.
	Path string `yaml:"path,omitempty"`
}

// RedisConfig holds configuration for the Redis cache store.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			SearchModel: "gpt-4o-search-preview",
			Model:       "gpt-4o-mini",
			Months:      3,
		},
		Cache: CacheConfig{
			Backend: BackendSQLite,
			Key:     "mma_fights_cache_v2",
			TTL:     6 * time.Hour,
		},
		SQLite: SQLiteConfig{
			Path: DefaultCacheFile,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Timeout: 3 * time.Minute,
	}
}

// Load loads configuration from the .fightnight directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.SQLite.Path != ":memory:" && !filepath.IsAbs(cfg.SQLite.Path) {
		cfg.SQLite.Path = filepath.Join(ConfigDir(basePath), cfg.SQLite.Path)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" && c.Redis.Password == "" {
		c.Redis.Password = password
	}
	if addr := os.Getenv("FIGHTNIGHT_REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if backend := os.Getenv("FIGHTNIGHT_CACHE_BACKEND"); backend != "" {
		c.Cache.Backend = backend
	}
	if raw := os.Getenv("FIGHTNIGHT_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid FIGHTNIGHT_CACHE_TTL: %w", err)
		}
		c.Cache.TTL = ttl
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("invalid cache backend %q, valid backends: [%s %s]", c.Cache.Backend, BackendSQLite, BackendRedis)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Key == "" {
		return fmt.Errorf("cache key is required")
	}
	if c.LLM.Months <= 0 {
		return fmt.Errorf("llm months must be positive, got %d", c.LLM.Months)
	}
	return nil
}

// ConfigDir returns the path to the .fightnight config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
