package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "foodcart.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/foodcart"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "FOODCART_"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	getenv  func(string) string
	homeDir func() (string, error)
	workDir func() (string, error)
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  logger,
		getenv:  os.Getenv,
		homeDir: os.UserHomeDir,
		workDir: os.Getwd,
	}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/foodcart/config.yaml)
// 3. Project config (foodcart.yaml in current or parent directories)
// 4. Explicit file, if path is not empty
// 5. FOODCART_* environment variables
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	if projectConfigPath := l.findProjectConfig(); projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if path != "" {
		explicit, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config.Merge(explicit)
	}

	config.Merge(l.fromEnv())

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (l *Loader) fromEnv() *Config {
	env := func(name string) string {
		return l.getenv(EnvPrefix + name)
	}

	return &Config{
		Currency: env("CURRENCY"),
		Cart:     CartConfig{AddPolicy: env("CART_ADD_POLICY")},
		Storage: StorageConfig{
			Backend:     env("STORAGE_BACKEND"),
			PostgresDSN: env("POSTGRES_DSN"),
			RedisURL:    env("REDIS_URL"),
			RedisPrefix: env("REDIS_PREFIX"),
			ReviewsKey:  env("REVIEWS_KEY"),
		},
		Catalog: CatalogConfig{
			Source: env("CATALOG_SOURCE"),
			File:   env("CATALOG_FILE"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL"),
			Format: env("LOG_FORMAT"),
		},
	}
}

func (l *Loader) userConfigPath() string {
	home, err := l.homeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks up from the working directory looking for foodcart.yaml
func (l *Loader) findProjectConfig() string {
	dir, err := l.workDir()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
