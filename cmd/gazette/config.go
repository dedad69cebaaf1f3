package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds settings read from the TOML config file. Command-line flags
// and environment variables take precedence over it.
type Config struct {
	DBPath      string  `toml:"db_path"`
	UserAgent   string  `toml:"user_agent"`
	Timeout     string  `toml:"timeout"`
	Concurrency int     `toml:"concurrency"`
	RateLimit   float64 `toml:"rate_limit"`
	LogLevel    string  `toml:"log_level"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		DBPath:      filepath.Join(gazetteDir(), "gazette.db"),
		Timeout:     "15s",
		Concurrency: 4,
		RateLimit:   1,
		LogLevel:    "warn",
	}
}

// DefaultConfigPath returns ~/.gazette/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(gazetteDir(), "config.toml")
}

func gazetteDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gazette"
	}
	return filepath.Join(home, ".gazette")
}

// LoadConfig reads the config file at path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if _, err := cfg.timeout(); err != nil {
		return nil, err
	}
	if _, err := cfg.level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: want a positive duration such as 15s", c.Timeout)
	}
	return d, nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: want debug, info, warn or error", c.LogLevel)
	}
	return level, nil
}
