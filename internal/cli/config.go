// ============================================================================
// Async-Runtime CLI - Configuration
// ============================================================================
//
// Package: internal/cli
// File: config.go
// Purpose: Load YAML defaults for pool size and metrics, overridable by
//          flags on each subcommand (teacher's loadConfig pattern).
//
// ============================================================================

package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete CLI configuration structure, loaded from a
// YAML file and overridable per-subcommand via flags.
type Config struct {
	Pool struct {
		WorkerCount int `yaml:"worker_count"`
	} `yaml:"pool"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

// defaultConfig is used whenever no config file is found at the given
// path — keeping `asyncrun factorial` usable with zero setup.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Pool.WorkerCount = 4
	cfg.Metrics.Port = 9090
	return cfg
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}
