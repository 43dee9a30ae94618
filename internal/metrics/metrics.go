// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/mfcore/internal/training"
)

// TrainingMetrics records training progress. It implements
// training.Observer and is safe for concurrent use by several runs.
type TrainingMetrics struct {
	// Epoch Metrics
	EpochsTotal *prometheus.CounterVec
	Loss        *prometheus.GaugeVec
	LearnRate   *prometheus.GaugeVec
	Iteration   *prometheus.GaugeVec

	// Run Metrics
	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	RunLastSuccess *prometheus.GaugeVec
}

var _ training.Observer = (*TrainingMetrics)(nil)

// NewTrainingMetrics creates the training metrics and registers them with
// reg. Pass prometheus.DefaultRegisterer to expose them on the default
// /metrics handler; tests pass a fresh prometheus.NewRegistry().
func NewTrainingMetrics(reg prometheus.Registerer) *TrainingMetrics {
	factory := promauto.With(reg)

	return &TrainingMetrics{
		EpochsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mfcore_training_epochs_total",
				Help: "Total number of evaluated training epochs",
			},
			[]string{"algorithm"},
		),

		Loss: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mfcore_training_loss",
				Help: "Loss reported by the most recent epoch",
			},
			[]string{"algorithm"},
		),

		LearnRate: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mfcore_training_learn_rate",
				Help: "Learning rate used by the most recent epoch",
			},
			[]string{"algorithm"},
		),

		Iteration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mfcore_training_iteration",
				Help: "1-based index of the most recent epoch",
			},
			[]string{"algorithm"},
		),

		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mfcore_training_runs_total",
				Help: "Total number of finished training runs",
			},
			[]string{"algorithm", "outcome"}, // outcome: converged, not_converged, diverged, canceled, failed
		),

		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mfcore_training_run_duration_seconds",
				Help:    "Wall time of training runs in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900, 3600}, // Runs can take an hour
			},
			[]string{"algorithm"},
		),

		RunLastSuccess: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mfcore_training_last_success_timestamp",
				Help: "Unix timestamp of the last run that finished without error",
			},
			[]string{"algorithm"},
		),
	}
}

// ObserveEpoch records one evaluated epoch.
func (m *TrainingMetrics) ObserveEpoch(ev training.EpochEvent) {
	m.EpochsTotal.WithLabelValues(ev.Algorithm).Inc()
	m.Loss.WithLabelValues(ev.Algorithm).Set(ev.Loss)
	m.LearnRate.WithLabelValues(ev.Algorithm).Set(ev.LearnRate)
	m.Iteration.WithLabelValues(ev.Algorithm).Set(float64(ev.Iteration))
}

// ObserveRun records a finished run.
//
//nolint:gocritic // Result is small enough to pass by value
func (m *TrainingMetrics) ObserveRun(res training.Result, err error) {
	m.RunsTotal.WithLabelValues(res.Algorithm, res.Outcome.String()).Inc()
	m.RunDuration.WithLabelValues(res.Algorithm).Observe(res.Duration.Seconds())
	if err == nil {
		m.RunLastSuccess.WithLabelValues(res.Algorithm).Set(float64(time.Now().Unix()))
	}
}
