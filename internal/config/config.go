// Package config loads geoschema settings from geoschema.yaml, GEOSCHEMA_*
// environment variables and DATABASE_URL.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conduit-lang/spatial/internal/orm/spatial"

	// register the backends an adapter name can select
	_ "github.com/conduit-lang/spatial/internal/orm/spatial/mysql"
	_ "github.com/conduit-lang/spatial/internal/orm/spatial/postgis"
)

// Config represents the geoschema configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	DryRun   bool           `mapstructure:"dry_run"`
}

// DatabaseConfig selects the spatial backend and where it lives
type DatabaseConfig struct {
	Adapter string `mapstructure:"adapter"`
	URL     string `mapstructure:"url"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads geoschema.yaml from dir when present. An empty dir means the
// working directory.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.adapter", "postgresql")
	v.SetDefault("database.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("dry_run", false)

	v.SetConfigName("geoschema")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("GEOSCHEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Logger builds the zap logger described by the log section
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	adapter := strings.ToLower(strings.TrimSpace(cfg.Database.Adapter))
	if !slices.Contains(spatial.Backends(), adapter) {
		return &spatial.ConfigurationError{Op: "load config", Name: cfg.Database.Adapter, Err: spatial.ErrUnsupportedBackend}
	}
	cfg.Database.Adapter = adapter

	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got: %s", cfg.Log.Level)
	}
	return nil
}

func parseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, err
	}
	return level, nil
}
