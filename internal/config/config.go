// Package config loads storefront settings from an optional YAML file and
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Admin    AdminConfig    `yaml:"admin"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port               string        `yaml:"port"`
	PublicOrigin       string        `yaml:"public_origin"` // used for checkout success/cancel URLs
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBodySize int64         `yaml:"max_request_body_size"`
}

// BackendConfig points at the hosted backend that owns checkout sessions,
// trial provisioning and file storage.
type BackendConfig struct {
	URL     string        `yaml:"url"`
	AnonKey string        `yaml:"anon_key"`
	Timeout time.Duration `yaml:"timeout"`
	Breaker BreakerConfig `yaml:"breaker"`
}

type BreakerConfig struct {
	MaxRequests         uint32        `yaml:"max_requests"`
	Interval            time.Duration `yaml:"interval"`
	OpenTimeout         time.Duration `yaml:"open_timeout"`
	ConsecutiveFailures uint32        `yaml:"consecutive_failures"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	Store      string        `yaml:"store"` // memory, redis
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
}

type CatalogConfig struct {
	Currency string `yaml:"currency"`
}

type AdminConfig struct {
	Token string `yaml:"token"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:               "8080",
			PublicOrigin:       "http://localhost:8080",
			RequestTimeout:     30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			MaxRequestBodySize: 1 << 20, // 1MB
		},
		Backend: BackendConfig{
			Timeout: 15 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:         1,
				Interval:            time.Minute,
				OpenTimeout:         30 * time.Second,
				ConsecutiveFailures: 5,
			},
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Session: SessionConfig{
			Store:      SessionStoreMemory,
			TTL:        30 * time.Minute,
			CookieName: "sid",
		},
		Catalog: CatalogConfig{
			Currency: "USD",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path when it exists, then applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, fmt.Errorf("cfg.applyEnv: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("HTTP_PORT", c.Server.Port)
	c.Server.PublicOrigin = getEnv("PUBLIC_ORIGIN", c.Server.PublicOrigin)
	c.Backend.URL = getEnv("BACKEND_URL", c.Backend.URL)
	c.Backend.AnonKey = getEnv("BACKEND_ANON_KEY", c.Backend.AnonKey)
	c.Postgres.DSN = getEnv("POSTGRES_DSN", c.Postgres.DSN)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Session.Store = getEnv("SESSION_STORE", c.Session.Store)
	c.Catalog.Currency = getEnv("CATALOG_CURRENCY", c.Catalog.Currency)
	c.Admin.Token = getEnv("ADMIN_TOKEN", c.Admin.Token)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB[%s] is not valid: %w", v, err)
		}
		c.Redis.DB = db
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL[%s] is not valid: %w", v, err)
		}
		c.Session.TTL = ttl
	}

	return nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is empty"))
	}
	if c.Server.PublicOrigin == "" {
		errs = append(errs, errors.New("server.public_origin is empty"))
	}
	if c.Backend.URL == "" {
		errs = append(errs, errors.New("backend.url is empty"))
	}
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn is empty"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, errors.New("backend.timeout must be positive"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("session.store[%s] is not valid", c.Session.Store))
	}
	if _, err := c.Currency(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c Config) Currency() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Catalog.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("catalog.currency[%s] is not valid: %w", c.Catalog.Currency, err)
	}
	return unit, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
