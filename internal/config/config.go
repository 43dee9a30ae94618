// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package config

import (
	"github.com/tomtom215/mfcore/internal/algorithms"
	"github.com/tomtom215/mfcore/internal/logging"
	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

// Config holds the configuration of the mfcore binary.
type Config struct {
	Training  training.Options  `koanf:"training"`
	Algorithm algorithms.Config `koanf:"algorithm"`
	Data      DataConfig        `koanf:"data"`
	Metrics   MetricsConfig     `koanf:"metrics"`
	Logging   LoggingConfig     `koanf:"logging"`
}

// DataConfig selects the ratings to train on.
type DataConfig struct {
	// Synthetic configures the generated low-rank dataset.
	Synthetic ratings.SyntheticConfig `koanf:"synthetic"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled serves /metrics while training runs.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// Listen is the host:port of the metrics server.
	// Default: 127.0.0.1:9464
	Listen string `koanf:"listen"`

	// Path is the HTTP path of the metrics handler.
	// Default: /metrics
	Path string `koanf:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// LoggingOptions converts the logging section to the logging package config.
func (c *Config) LoggingOptions() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}
