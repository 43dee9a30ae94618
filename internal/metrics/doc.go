// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

/*
Package metrics provides Prometheus metrics for training runs.

TrainingMetrics implements training.Observer. Register it with a Trainer and
every evaluated epoch and every finished run is recorded:

	m := metrics.NewTrainingMetrics(prometheus.DefaultRegisterer)
	tr, err := training.New(opts, logger, training.WithObserver(m))

# Metrics Endpoint

mfcore train exposes the default registry at /metrics when metrics.listen is
set:

	curl http://localhost:9464/metrics

# Available Metrics

Epoch Metrics:
  - mfcore_training_epochs_total: Evaluated epochs (counter)
    Labels: algorithm
  - mfcore_training_loss: Loss of the most recent epoch (gauge)
    Labels: algorithm
  - mfcore_training_learn_rate: Learning rate of the most recent epoch (gauge)
    Labels: algorithm
  - mfcore_training_iteration: Index of the most recent epoch (gauge)
    Labels: algorithm

Run Metrics:
  - mfcore_training_runs_total: Finished runs (counter)
    Labels: algorithm, outcome
  - mfcore_training_run_duration_seconds: Run wall time (histogram)
    Labels: algorithm
    Buckets: 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900, 3600
  - mfcore_training_last_success_timestamp: Unix time of the last run without error (gauge)
    Labels: algorithm

A diverged epoch is recorded too, so mfcore_training_loss can read NaN or +Inf
after a divergence.

# Example Prometheus Queries

Runs that diverged in the last day:

	increase(mfcore_training_runs_total{outcome="diverged"}[1d])

Epoch throughput:

	rate(mfcore_training_epochs_total[5m])
*/
package metrics
