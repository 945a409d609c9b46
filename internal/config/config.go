// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/architect-assistant/internal/logging"
)

// Defaults applied by MergeWithDefaults
const (
	DefaultPort            = 8080
	DefaultOutputDir       = "."
	DefaultBatchLimit      = 4
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 30 * time.Second
	MaxBatchLimit          = 64
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or are provided via CLI flags.
type Config struct {
	// Server
	Port            int      `json:"port,omitempty"`             // HTTP listen port
	AllowedOrigins  []string `json:"allowed_origins,omitempty"`  // CORS origins; empty allows any
	ShutdownTimeout string   `json:"shutdown_timeout,omitempty"` // Graceful shutdown deadline, e.g. "30s"
	DisableGzip     bool     `json:"disable_gzip,omitempty"`     // Serve uncompressed responses

	// Generation
	OutputDir  string `json:"output_dir,omitempty"`  // Directory for generated scripts
	BatchLimit int    `json:"batch_limit,omitempty"` // Concurrent generations in a batch

	// Behavior
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
	Verbose  bool   `json:"verbose,omitempty"`   // Print extraction and artifact summaries
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.BatchLimit < 0 || c.BatchLimit > MaxBatchLimit {
		return fmt.Errorf("config error: 'batch_limit' must be between 0 and %d", MaxBatchLimit)
	}

	if c.ShutdownTimeout != "" {
		d, err := time.ParseDuration(c.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'shutdown_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'shutdown_timeout' must be positive")
		}
	}

	if c.LogLevel != "" {
		switch c.LogLevel {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
		}
	}

	if c.OutputDir != "" {
		info, err := os.Stat(c.OutputDir)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.ShutdownTimeout == "" {
		result.ShutdownTimeout = defaults.ShutdownTimeout
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.BatchLimit == 0 {
		result.BatchLimit = defaults.BatchLimit
	}

	// Slice fields
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:            DefaultPort,
		OutputDir:       DefaultOutputDir,
		BatchLimit:      DefaultBatchLimit,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout.String(),
	}
}

// FromEnv returns the configuration set through environment variables. Unset or
// unparseable variables leave the corresponding field empty.
func FromEnv() Config {
	var cfg Config
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if limit, err := strconv.Atoi(os.Getenv("ARCHITECT_BATCH_LIMIT")); err == nil {
		cfg.BatchLimit = limit
	}
	cfg.OutputDir = os.Getenv("ARCHITECT_OUTPUT_DIR")
	cfg.LogLevel = os.Getenv(logging.LevelEnv)
	return cfg
}

// Resolve layers configuration sources: the config file (if any) wins over environment
// variables, which win over the built-in defaults. CLI flags are applied by the caller.
func Resolve(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	env := FromEnv()
	merged := cfg.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// ShutdownDuration returns the parsed shutdown timeout, falling back to the default
func (c *Config) ShutdownDuration() time.Duration {
	if d, err := time.ParseDuration(c.ShutdownTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultShutdownTimeout
}
