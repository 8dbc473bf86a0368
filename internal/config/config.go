// Package config loads tracker configuration from defaults, an optional config file and
// TRACKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Store kinds
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "TRACKER"

// Config is the full runtime configuration.
type Config struct {
	DataDir     string       `mapstructure:"data_dir"`
	Store       string       `mapstructure:"store"`
	DatabaseURL string       `mapstructure:"database_url"`
	Server      ServerConfig `mapstructure:"server"`
	Log         LogConfig    `mapstructure:"log"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultDataDir is $HOME/.academic-tracker, or a relative directory when no home is set.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".academic-tracker"
	}
	return filepath.Join(home, ".academic-tracker")
}

// Load reads configuration. Precedence: env vars > config file > defaults.
// An empty path searches for academic-tracker.{yaml,json,toml} in the working directory and
// the default data directory; a missing file is not an error.
// The result is not validated: callers apply their own overrides first, then call Validate.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("store", StoreFile)
	v.SetDefault("database_url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("academic-tracker")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultDataDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.DataDir == "" {
			return fmt.Errorf("config error: 'data_dir' is required for the file store")
		}
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	default:
		return fmt.Errorf("config error: unknown store %q (want file, memory or postgres)", c.Store)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or console")
	}

	return nil
}
