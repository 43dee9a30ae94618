// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/tomtom215/mfcore/internal/training"
	"github.com/tomtom215/mfcore/internal/validation"
)

// Validate checks that the configuration can drive a training run.
// Every error wraps training.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.Training.Validate(); err != nil {
		return fmt.Errorf("training: %w", err)
	}

	if err := c.validateAlgorithm(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateAlgorithm validates the algorithm selection.
func (c *Config) validateAlgorithm() error {
	if verr := validation.ValidateStruct(&c.Algorithm); verr != nil {
		return fmt.Errorf("%w: algorithm: %w", training.ErrInvalidConfig, verr)
	}
	return nil
}

// validateData validates the synthetic dataset settings.
func (c *Config) validateData() error {
	if err := c.Data.Synthetic.Validate(); err != nil {
		return fmt.Errorf("%w: data: %w", training.ErrInvalidConfig, err)
	}
	return nil
}

// validateMetrics validates the metrics endpoint (only if enabled).
func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}

	_, port, err := net.SplitHostPort(c.Metrics.Listen)
	if err != nil {
		return fmt.Errorf("%w: MFCORE_METRICS_LISTEN %q is not host:port: %w",
			training.ErrInvalidConfig, c.Metrics.Listen, err)
	}

	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%w: MFCORE_METRICS_LISTEN port %q must be 1-65535",
			training.ErrInvalidConfig, port)
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: MFCORE_METRICS_PATH %q must start with /",
			training.ErrInvalidConfig, c.Metrics.Path)
	}
	return nil
}

// validateLogging validates logging configuration.
func (c *Config) validateLogging() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("%w: MFCORE_LOG_LEVEL must be one of: trace, debug, info, warn, error, disabled (got: %s)",
			training.ErrInvalidConfig, c.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("%w: MFCORE_LOG_FORMAT must be one of: json, console (got: %s)",
			training.ErrInvalidConfig, c.Logging.Format)
	}

	return nil
}
