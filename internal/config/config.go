package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"opendbm/internal/infrastructure/logging"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for all environment overrides, e.g. OPENDBM_STARTUP_DELAY
const EnvPrefix = "OPENDBM"

// Config holds the desktop shell configuration.
// The sidecar port and mode are constants of package sidecar.
type Config struct {
	// Environment and logging
	Environment string `json:"environment" split_words:"true"` // development, test, production
	LogLevel    string `json:"logLevel" split_words:"true"`    // debug, info, warn, error
	LogFormat   string `json:"logFormat" split_words:"true"`   // console or json

	// Resource directory override; empty means resolve from the executable location
	ResourceDir string `json:"resourceDir" split_words:"true"`

	// Sidecar lifecycle
	StartupDelay      time.Duration `json:"startupDelay" split_words:"true"`      // pause after a successful launch
	StopTimeout       time.Duration `json:"stopTimeout" split_words:"true"`       // wait for exit after kill (0 = fire-and-forget)
	ReadinessTimeout  time.Duration `json:"readinessTimeout" split_words:"true"`  // health probe budget (0 = disabled)
	ReadinessInterval time.Duration `json:"readinessInterval" split_words:"true"` // health probe poll interval

	// Directory for server-stdout.log / server-stderr.log; empty inherits the shell's stdio
	ServerLogDir string `json:"serverLogDir" split_words:"true"`
}

// DefaultConfig returns a configuration with production defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "production",
		LogLevel:    "info",
		LogFormat:   "console",

		StartupDelay:      500 * time.Millisecond,
		StopTimeout:       0,
		ReadinessTimeout:  0,
		ReadinessInterval: 100 * time.Millisecond,
	}
}

// DevelopmentConfig returns a configuration for running next to `wails dev`
func DevelopmentConfig() *Config {
	config := DefaultConfig()
	config.Environment = "development"
	config.LogLevel = "debug"
	config.StopTimeout = 2 * time.Second // surface servers that ignore the kill
	return config
}

// TestConfig returns a configuration for tests: quiet and fast
func TestConfig() *Config {
	config := DefaultConfig()
	config.Environment = "test"
	config.LogLevel = "error"
	config.StartupDelay = 10 * time.Millisecond
	config.ReadinessInterval = 10 * time.Millisecond
	return config
}

// ConfigForEnvironment returns the base configuration for the given environment
func ConfigForEnvironment(env string) *Config {
	switch env {
	case "development":
		return DevelopmentConfig()
	case "test":
		return TestConfig()
	default:
		return DefaultConfig()
	}
}

// LoadFromEnvironment applies OPENDBM_* environment overrides.
// Variables that are not set leave the current value untouched.
func (c *Config) LoadFromEnvironment() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to load config from environment: %w", err)
	}
	return nil
}

// Validate validates the configuration parameters
func (c *Config) Validate() error {
	validEnvironments := map[string]bool{
		"development": true,
		"test":        true,
		"production":  true,
	}
	if !validEnvironments[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid logLevel: %s", c.LogLevel)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid logFormat: %s", c.LogFormat)
	}

	if c.StartupDelay < 0 {
		return fmt.Errorf("startupDelay cannot be negative, got %v", c.StartupDelay)
	}

	if c.StopTimeout < 0 {
		return fmt.Errorf("stopTimeout cannot be negative, got %v", c.StopTimeout)
	}

	if c.ReadinessTimeout < 0 {
		return fmt.Errorf("readinessTimeout cannot be negative, got %v", c.ReadinessTimeout)
	}

	if c.ReadinessTimeout > 0 {
		if c.ReadinessInterval <= 0 {
			return fmt.Errorf("readinessInterval must be positive when readiness probing is enabled, got %v", c.ReadinessInterval)
		}
		if c.ReadinessInterval > c.ReadinessTimeout {
			return fmt.Errorf("readinessInterval (%v) cannot be greater than readinessTimeout (%v)", c.ReadinessInterval, c.ReadinessTimeout)
		}
	}

	// Ensure the server log directory exists
	if c.ServerLogDir != "" {
		if _, err := os.Stat(c.ServerLogDir); os.IsNotExist(err) {
			if err := os.MkdirAll(c.ServerLogDir, 0755); err != nil {
				return fmt.Errorf("failed to create server log directory %s: %w", c.ServerLogDir, err)
			}
		}
	}

	return nil
}

// LoggingConfig derives the logger configuration
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:       strings.ToLower(c.LogLevel),
		Format:      c.LogFormat,
		OutputPaths: []string{"stderr"},
	}
}

// ReadinessEnabled reports whether the health probe runs after launch
func (c *Config) ReadinessEnabled() bool {
	return c.ReadinessTimeout > 0
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
