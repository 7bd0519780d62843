package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/faizmokh/liftlog/internal/files"
)

const (
	// PathEnvVar points at an alternate config file.
	PathEnvVar = "LIFTLOG_CONFIG"

	defaultLogLevel = "warn"
	defaultUnit     = "lbs"
)

// Config holds user preferences. Every field is optional in the file.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	Unit     string `yaml:"unit"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: defaultLogLevel,
		Unit:     defaultUnit,
	}
}

// DefaultPath resolves $XDG_CONFIG_HOME/liftlog/config.yaml, or the LIFTLOG_CONFIG override.
func DefaultPath() (string, error) {
	if v := strings.TrimSpace(os.Getenv(PathEnvVar)); v != "" {
		return files.NormalizePath(v)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "liftlog", "config.yaml"), nil
}

// Load reads config from a YAML file, then applies environment variable overrides:
//
//	LIFTLOG_HOME, LIFTLOG_LOG_LEVEL, LIFTLOG_UNIT
//
// An empty path means DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	if cfg.DataDir != "" {
		if cfg.DataDir, err = files.NormalizePath(cfg.DataDir); err != nil {
			return nil, fmt.Errorf("expanding data_dir: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(files.HomeEnvVar)); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("LIFTLOG_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("LIFTLOG_UNIT")); v != "" {
		cfg.Unit = v
	}
}

func (c *Config) validate() error {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if strings.TrimSpace(c.Unit) == "" {
		return fmt.Errorf("unit must not be empty")
	}
	return nil
}
