package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "forecourt/libs/config"
)

// Config defines dashboard client configuration.
type Config struct {
	API struct {
		BaseURL        string `yaml:"baseUrl" env:"FORECOURT_API_URL"`
		Token          string `yaml:"token" env:"FORECOURT_API_TOKEN"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" env:"FORECOURT_HTTP_TIMEOUT"`
	} `yaml:"api"`
	Station struct {
		Default string `yaml:"default" env:"FORECOURT_STATION"`
	} `yaml:"station"`
	Cache struct {
		Backend    string `yaml:"backend" env:"FORECOURT_CACHE_BACKEND"`
		TTLSeconds int    `yaml:"ttlSeconds" env:"FORECOURT_CACHE_TTL"`
	} `yaml:"cache"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`
}

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheOff    = "off"
)

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.API.TimeoutSeconds = 10
	cfg.Cache.Backend = CacheMemory
	cfg.Cache.TTLSeconds = 30

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, errors.New("config: api base url required")
	}

	switch cfg.CacheBackend() {
	case CacheMemory, CacheOff:
	case CacheRedis:
		if strings.TrimSpace(cfg.Redis.Addr) == "" {
			return nil, errors.New("config: redis addr required for redis cache backend")
		}
	default:
		return nil, fmt.Errorf("config: unknown cache backend %q", cfg.Cache.Backend)
	}
	return cfg, nil
}

// HTTPTimeout returns the API client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CacheBackend returns the normalized cache backend name.
func (c *Config) CacheBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if backend == "" {
		return CacheMemory
	}
	return backend
}

// CacheTTL returns how long read-side queries stay cached.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
