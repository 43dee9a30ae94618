// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

/*
Package config provides layered configuration for the mfcore binary.

# Configuration Sources

LoadWithKoanf merges, in increasing priority:
  - Built-in defaults (training.DefaultOptions with a 100 epoch cap,
    algorithms.DefaultConfig, ratings.DefaultSyntheticConfig)
  - An optional YAML file: $MFCORE_CONFIG, ./mfcore.yaml, ./mfcore.yml or
    /etc/mfcore/mfcore.yaml, first found wins
  - MFCORE_* environment variables

# Configuration File

	training:
	  iterations: 200
	  learn_rate: 0.01
	  bold_driver: true
	  factors: 16
	algorithm:
	  name: dsgd
	  workers: 4
	data:
	  synthetic:
	    num_users: 1000
	    num_items: 500
	metrics:
	  enabled: true
	  listen: 127.0.0.1:9464
	logging:
	  level: info
	  format: console

# Environment Variables

Training (training.*):
  - MFCORE_ITERATIONS, MFCORE_LEARN_RATE, MFCORE_MAX_LEARN_RATE
  - MFCORE_REG_USER, MFCORE_REG_ITEM, MFCORE_FACTORS
  - MFCORE_BOLD_DRIVER, MFCORE_DECAY
  - MFCORE_INIT_MEAN, MFCORE_INIT_STD, MFCORE_SEED, MFCORE_VERBOSE

Algorithm (algorithm.*):
  - MFCORE_ALGORITHM: regsvd, biasedmf or dsgd (default: biasedmf)
  - MFCORE_ALGORITHM_REG_BIAS, MFCORE_ALGORITHM_WORKERS, MFCORE_ALGORITHM_SEED

Synthetic data (data.synthetic.*):
  - MFCORE_DATA_USERS, MFCORE_DATA_ITEMS, MFCORE_DATA_RANK
  - MFCORE_DATA_DENSITY, MFCORE_DATA_NOISE
  - MFCORE_DATA_MIN_RATING, MFCORE_DATA_MAX_RATING, MFCORE_DATA_SEED

Metrics (metrics.*):
  - MFCORE_METRICS_ENABLED, MFCORE_METRICS_LISTEN, MFCORE_METRICS_PATH

Logging (logging.*):
  - MFCORE_LOG_LEVEL, MFCORE_LOG_FORMAT, MFCORE_LOG_CALLER

Unmapped MFCORE_* variables are ignored.

# Validation

Config.Validate runs the struct validators of every section plus explicit
checks of the metrics listen address and the logging section. Every error
wraps training.ErrInvalidConfig.
*/
package config
