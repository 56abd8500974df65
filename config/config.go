// Package config loads the YAML configuration of the sccodec tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the sccodec configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Logging Logging `yaml:"logging"`
	Limits  Limits  `yaml:"limits"`
}

// Storage selects the key-value backend and its optional read cache.
type Storage struct {
	Backend string `yaml:"backend"` // memory | pebble | redis
	Path    string `yaml:"path"`    // pebble directory
	Redis   Redis  `yaml:"redis"`
	Cache   Cache  `yaml:"cache"`
}

// Redis holds the redis backend connection settings.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Cache configures the read-through cache placed in front of the backend.
type Cache struct {
	Kind       string `yaml:"kind"` // none | bigcache | ristretto
	MaxCost    int64  `yaml:"max_cost"`
	LifeWindow string `yaml:"life_window"` // bigcache entry lifetime, e.g. "10m"
}

// Logging contains logging configuration
type Logging struct {
	Level   string `yaml:"level"`
	Backend string `yaml:"backend"` // zap | logrus
}

// Limits bounds the work done by the decoders of the tool.
type Limits struct {
	MaxDecode int `yaml:"max_decode"` // bytes
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: Storage{
			Backend: "memory",
			Path:    "./data",
			Redis: Redis{
				Addr:   "127.0.0.1:6379",
				Prefix: "sccodec:",
			},
			Cache: Cache{
				Kind:       "none",
				MaxCost:    64 << 20,
				LifeWindow: "10m",
			},
		},
		Logging: Logging{
			Level:   "info",
			Backend: "zap",
		},
		Limits: Limits{
			MaxDecode: 1 << 20,
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		path = abs
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks enumerated fields and bounds.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory":
	case "pebble":
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for pebble", ErrInvalid)
		}
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: storage.redis.addr is required for redis", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: storage.backend %q", ErrInvalid, c.Storage.Backend)
	}

	switch c.Storage.Cache.Kind {
	case "", "none":
	case "bigcache", "ristretto":
		if c.Storage.Cache.MaxCost <= 0 {
			return fmt.Errorf("%w: storage.cache.max_cost must be positive", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: storage.cache.kind %q", ErrInvalid, c.Storage.Cache.Kind)
	}

	switch c.Logging.Backend {
	case "zap", "logrus":
	default:
		return fmt.Errorf("%w: logging.backend %q", ErrInvalid, c.Logging.Backend)
	}

	if c.Limits.MaxDecode <= 0 {
		return fmt.Errorf("%w: limits.max_decode must be positive", ErrInvalid)
	}
	return nil
}
