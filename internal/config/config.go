// Package config loads ppmfit's runtime configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (~/.ppmfit/config.yaml), then environment variables. A missing file is
// not an error: the defaults are enough to run.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user data directory under $HOME.
	DirName = ".ppmfit"
	// FileName is the config file inside the data directory.
	FileName = "config.yaml"
	// DBFile is the decision-space database inside the data directory.
	DBFile = "spaces.db"

	EnvDataDir  = "PPMFIT_DATA_DIR"
	EnvLogLevel = "PPMFIT_LOG_LEVEL"
)

// Config holds ppmfit configuration.
type Config struct {
	DataDir  string `yaml:"data_dir" validate:"required"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// CacheSize and CacheTTL size the memoized scoring engine.
	CacheSize int           `yaml:"cache_size" validate:"min=1"`
	CacheTTL  time.Duration `yaml:"cache_ttl" validate:"min=0"`

	// TopTradeoffs is how many tradeoffs tools report by default.
	TopTradeoffs int `yaml:"top_tradeoffs" validate:"min=1,max=50"`

	// HistoryLimit bounds in-memory transition history per machine.
	// The database always keeps the full history. 0 means unbounded.
	HistoryLimit int `yaml:"history_limit" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:      filepath.Join(home, DirName),
		LogLevel:     "info",
		CacheSize:    256,
		CacheTTL:     10 * time.Minute,
		TopTradeoffs: 5,
		HistoryLimit: 0,
	}
}

// DefaultPath returns the location of the config file for the current user.
func DefaultPath() string {
	return filepath.Join(Default().DataDir, FileName)
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path or a missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "parsing %s", path)
			}
		case os.IsNotExist(err):
			// Defaults only.
		default:
			return Config{}, errors.Wrapf(err, "reading %s", path)
		}
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// DBPath returns the decision-space database path.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, DBFile)
}

// Level maps LogLevel to a slog level. Unknown values mean info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
