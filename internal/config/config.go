// Package config loads the settings of the tablemodel command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-dbal/tablemodel/logger"
	"github.com/go-dbal/tablemodel/utils"
)

// Config holds all configuration of the tablemodel command.
type Config struct {
	// Dialect is one of sqlite, mysql or postgres
	Dialect string `json:"dialect" yaml:"dialect"`
	// DSN is passed to the dialect driver unchanged
	DSN string `json:"dsn" yaml:"dsn"`

	Logger   LoggerConfig   `json:"logger" yaml:"logger"`
	Model    ModelConfig    `json:"model" yaml:"model"`
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
}

// LoggerConfig selects the statement logger.
type LoggerConfig struct {
	// Backend is one of std, logrus, zap, zerolog or slog
	Backend              string        `json:"backend" yaml:"backend"`
	Level                string        `json:"level" yaml:"level"`
	SlowThreshold        time.Duration `json:"slow_threshold" yaml:"slow_threshold"`
	Colorful             bool          `json:"colorful" yaml:"colorful"`
	ParameterizedQueries bool          `json:"parameterized_queries" yaml:"parameterized_queries"`
}

// ModelConfig mirrors the model related fields of tablemodel.Config.
type ModelConfig struct {
	BlockGlobalUpdate bool          `json:"block_global_update" yaml:"block_global_update"`
	TranslateError    bool          `json:"translate_error" yaml:"translate_error"`
	CacheSize         int           `json:"cache_size" yaml:"cache_size"`
	CacheTTL          time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	PrepareStmt       bool          `json:"prepare_stmt" yaml:"prepare_stmt"`
}

// PostgresConfig holds postgres only settings.
type PostgresConfig struct {
	WithoutReturning bool `json:"without_returning" yaml:"without_returning"`
}

// Backends lists the supported logger backends.
var Backends = []string{"std", "logrus", "zap", "zerolog", "slog"}

// Dialects lists the supported dialects.
var Dialects = []string{"sqlite", "mysql", "postgres"}

// DefaultConfig returns a configuration working on an in-memory sqlite database.
func DefaultConfig() *Config {
	return &Config{
		Dialect: "sqlite",
		DSN:     "file::memory:?cache=shared",
		Logger: LoggerConfig{
			Backend:       "std",
			Level:         "warn",
			SlowThreshold: 200 * time.Millisecond,
		},
		Model: ModelConfig{
			TranslateError: true,
			CacheSize:      128,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !utils.Contains(Dialects, c.Dialect) {
		return fmt.Errorf("dialect must be one of %s, got %q", strings.Join(Dialects, ", "), c.Dialect)
	}
	if c.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	if !utils.Contains(Backends, c.Logger.Backend) {
		return fmt.Errorf("logger backend must be one of %s, got %q", strings.Join(Backends, ", "), c.Logger.Backend)
	}
	if _, err := logger.ParseLevel(c.Logger.Level); err != nil {
		return err
	}
	if c.Logger.SlowThreshold < 0 {
		return fmt.Errorf("logger slow_threshold must not be negative")
	}
	if c.Model.CacheSize < 0 {
		return fmt.Errorf("model cache_size must not be negative")
	}
	if c.Model.CacheTTL < 0 {
		return fmt.Errorf("model cache_ttl must not be negative")
	}
	return nil
}

// LogLevel returns the parsed logger level, Warn when it cannot be parsed.
func (c *Config) LogLevel() logger.LogLevel {
	level, err := logger.ParseLevel(c.Logger.Level)
	if err != nil {
		return logger.Warn
	}
	return level
}

// LoggerConfig converts the logger section to a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		SlowThreshold:        c.Logger.SlowThreshold,
		Colorful:             c.Logger.Colorful,
		ParameterizedQueries: c.Logger.ParameterizedQueries,
		LogLevel:             c.LogLevel(),
	}
}

// LoadFromFile loads configuration from a YAML or JSON file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv overrides configuration values from TABLEMODEL_* environment variables.
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv("TABLEMODEL_DIALECT"); v != "" {
		cfg.Dialect = v
	}
	if v := os.Getenv("TABLEMODEL_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("TABLEMODEL_LOGGER"); v != "" {
		cfg.Logger.Backend = v
	}
	if v := os.Getenv("TABLEMODEL_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("TABLEMODEL_SLOW_THRESHOLD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TABLEMODEL_SLOW_THRESHOLD: %w", err)
		}
		cfg.Logger.SlowThreshold = d
	}
	if v := os.Getenv("TABLEMODEL_COLORFUL"); v != "" {
		cfg.Logger.Colorful = utils.CheckTruth(v)
	}
	if v := os.Getenv("TABLEMODEL_PARAMETERIZED_QUERIES"); v != "" {
		cfg.Logger.ParameterizedQueries = utils.CheckTruth(v)
	}
	if v := os.Getenv("TABLEMODEL_BLOCK_GLOBAL_UPDATE"); v != "" {
		cfg.Model.BlockGlobalUpdate = utils.CheckTruth(v)
	}
	if v := os.Getenv("TABLEMODEL_TRANSLATE_ERROR"); v != "" {
		cfg.Model.TranslateError = utils.CheckTruth(v)
	}
	if v := os.Getenv("TABLEMODEL_PREPARE_STMT"); v != "" {
		cfg.Model.PrepareStmt = utils.CheckTruth(v)
	}
	if v := os.Getenv("TABLEMODEL_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TABLEMODEL_CACHE_SIZE: %w", err)
		}
		cfg.Model.CacheSize = n
	}
	if v := os.Getenv("TABLEMODEL_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TABLEMODEL_CACHE_TTL: %w", err)
		}
		cfg.Model.CacheTTL = d
	}
	if v := os.Getenv("TABLEMODEL_POSTGRES_WITHOUT_RETURNING"); v != "" {
		cfg.Postgres.WithoutReturning = utils.CheckTruth(v)
	}
	return nil
}

