// Package config provides configuration loading for foodcart.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikolayk812/foodcart/internal/cart"
	"github.com/nikolayk812/foodcart/internal/checkout"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Catalog sources
const (
	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
)

// Config represents the complete foodcart configuration
type Config struct {
	Currency string           `yaml:"currency"`
	Cart     CartConfig       `yaml:"cart"`
	Storage  StorageConfig    `yaml:"storage"`
	Catalog  CatalogConfig    `yaml:"catalog"`
	Profile  checkout.Address `yaml:"profile"`
	Log      LogConfig        `yaml:"log"`
}

// CartConfig configures cart behaviour
type CartConfig struct {
	// AddPolicy is "append" (duplicates allowed) or "replace"
	AddPolicy string `yaml:"add_policy"`
}

// StorageConfig selects where reviews and carts are kept
type StorageConfig struct {
	// Backend is one of memory, postgres, redis
	Backend     string `yaml:"backend"`
	PostgresDSN string `yaml:"postgres_dsn"`
	RedisURL    string `yaml:"redis_url"`
	// RedisPrefix namespaces keys in a shared Redis
	RedisPrefix string `yaml:"redis_prefix"`
	ReviewsKey  string `yaml:"reviews_key"`
}

// CatalogConfig selects the menu source
type CatalogConfig struct {
	Source string `yaml:"source"`
	// File overrides the built-in menu when Source is static
	File string `yaml:"file"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Currency: "USD",
		Cart: CartConfig{
			AddPolicy: string(cart.AddAppend),
		},
		Storage: StorageConfig{
			Backend:     BackendMemory,
			RedisPrefix: "foodcart",
			ReviewsKey:  "foodReviews",
		},
		Catalog: CatalogConfig{
			Source: CatalogStatic,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := currency.ParseISO(c.Currency); err != nil {
		return fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}
	if _, err := cart.ParseAddPolicy(c.Cart.AddPolicy); err != nil {
		return fmt.Errorf("cart.add_policy: %w", err)
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres backend")
		}
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("storage.backend[%s] is not valid", c.Storage.Backend)
	}
	if c.Storage.ReviewsKey == "" {
		return fmt.Errorf("storage.reviews_key is required")
	}

	switch c.Catalog.Source {
	case CatalogStatic:
	case CatalogPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres catalog")
		}
	default:
		return fmt.Errorf("catalog.source[%s] is not valid", c.Catalog.Source)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format[%s] is not valid", c.Log.Format)
	}

	return nil
}

// CurrencyUnit returns the parsed currency. Call Validate first.
func (c *Config) CurrencyUnit() currency.Unit {
	u, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.USD
	}
	return u
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level[%s] is not valid", l.Level)
	}
	return level, nil
}

// NewLogger builds the process logger described by l.
func (l LogConfig) NewLogger(w *os.File) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	mergeString(&c.Currency, other.Currency)
	mergeString(&c.Cart.AddPolicy, other.Cart.AddPolicy)

	mergeString(&c.Storage.Backend, other.Storage.Backend)
	mergeString(&c.Storage.PostgresDSN, other.Storage.PostgresDSN)
	mergeString(&c.Storage.RedisURL, other.Storage.RedisURL)
	mergeString(&c.Storage.RedisPrefix, other.Storage.RedisPrefix)
	mergeString(&c.Storage.ReviewsKey, other.Storage.ReviewsKey)

	mergeString(&c.Catalog.Source, other.Catalog.Source)
	mergeString(&c.Catalog.File, other.Catalog.File)

	mergeString(&c.Profile.StreetAddress, other.Profile.StreetAddress)
	mergeString(&c.Profile.PostalCode, other.Profile.PostalCode)
	mergeString(&c.Profile.City, other.Profile.City)
	mergeString(&c.Profile.Country, other.Profile.Country)

	mergeString(&c.Log.Level, other.Log.Level)
	mergeString(&c.Log.Format, other.Log.Format)
}

// HasProfile reports whether a delivery profile is configured
func (c *Config) HasProfile() bool {
	return c.Profile != checkout.Address{}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
