// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/mfcore/internal/algorithms"
	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"mfcore.yaml",
	"mfcore.yml",
	"/etc/mfcore/mfcore.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "MFCORE_CONFIG"

// envPrefix restricts the environment provider to mfcore variables.
const envPrefix = "MFCORE_"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	opts := training.DefaultOptions()
	opts.Iterations = 100 // the library has no default cap; the binary does

	return &Config{
		Training:  opts,
		Algorithm: algorithms.DefaultConfig(),
		Data: DataConfig{
			Synthetic: ratings.DefaultSyntheticConfig(),
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9464",
			Path:    "/metrics",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: MFCORE_* overrides
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// MFCORE_ITERATIONS -> training.iterations
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lowercased environment variable names, without the
// MFCORE_ prefix, to koanf config paths.
var envMappings = map[string]string{
	// Training run
	"iterations":     "training.iterations",
	"learn_rate":     "training.learn_rate",
	"max_learn_rate": "training.max_learn_rate",
	"reg_user":       "training.reg_user",
	"reg_item":       "training.reg_item",
	"factors":        "training.factors",
	"bold_driver":    "training.bold_driver",
	"decay":          "training.decay",
	"init_mean":      "training.init_mean",
	"init_std":       "training.init_std",
	"seed":           "training.seed",
	"verbose":        "training.verbose",

	// Algorithm selection
	"algorithm":          "algorithm.name",
	"algorithm_reg_bias": "algorithm.reg_bias",
	"algorithm_workers":  "algorithm.workers",
	"algorithm_seed":     "algorithm.seed",

	// Synthetic data
	"data_users":      "data.synthetic.num_users",
	"data_items":      "data.synthetic.num_items",
	"data_rank":       "data.synthetic.rank",
	"data_density":    "data.synthetic.density",
	"data_noise":      "data.synthetic.noise",
	"data_min_rating": "data.synthetic.min_rating",
	"data_max_rating": "data.synthetic.max_rating",
	"data_seed":       "data.synthetic.seed",

	// Metrics
	"metrics_enabled": "metrics.enabled",
	"metrics_listen":  "metrics.listen",
	"metrics_path":    "metrics.path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - MFCORE_ITERATIONS -> training.iterations
//   - MFCORE_ALGORITHM -> algorithm.name
//   - MFCORE_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	return ""
}
