package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/techie2000/axiom/pathfinder/pkg/pact"
)

// Config holds all configuration for pactctl
type Config struct {
	CPC     CPC
	Pact    Pact
	Logging Logging
}

type CPC struct {
	// TablePath overrides the bundled CPC table when set.
	TablePath string
}

type Pact struct {
	SpecVersion string
}

type Logging struct {
	Level             string
	EnableFileLogging bool
	LogFilePath       string
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		CPC: CPC{
			TablePath: getEnv("PACT_CPC_TABLE", ""),
		},
		Pact: Pact{
			SpecVersion: getEnv("PACT_SPEC_VERSION", pact.DefaultSpecVersion.String()),
		},
		Logging: Logging{
			Level:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
			EnableFileLogging: getEnv("ENABLE_FILE_LOGGING", "false") == "true",
			LogFilePath:       getEnv("LOG_FILE_PATH", "./data/pactctl.log"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	if !logLevels[c.Logging.Level] {
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}
	if c.Logging.EnableFileLogging && strings.TrimSpace(c.Logging.LogFilePath) == "" {
		return fmt.Errorf("LOG_FILE_PATH is required when ENABLE_FILE_LOGGING is true")
	}
	if _, err := pact.ParseSpecVersion(c.Pact.SpecVersion); err != nil {
		return fmt.Errorf("invalid PACT_SPEC_VERSION: %w", err)
	}
	return nil
}

// SpecVersion returns the configured default spec version.
func (c *Config) SpecVersion() pact.SpecVersion {
	sv, err := pact.ParseSpecVersion(c.Pact.SpecVersion)
	if err != nil {
		return pact.DefaultSpecVersion
	}
	return sv
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
