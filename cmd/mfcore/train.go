// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package main

import (
	"context"
	"io"
	"math"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tomtom215/mfcore/internal/algorithms"
	"github.com/tomtom215/mfcore/internal/config"
	"github.com/tomtom215/mfcore/internal/logging"
	"github.com/tomtom215/mfcore/internal/metrics"
	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

// summary is the JSON document printed after a run. Non-finite floats
// are encoded as null.
type summary struct {
	RunID      string           `json:"run_id"`
	Algorithm  string           `json:"algorithm"`
	Outcome    training.Outcome `json:"outcome"`
	Iterations int              `json:"iterations"`
	FinalLoss  *float64         `json:"final_loss"`
	LearnRate  *float64         `json:"learn_rate"`
	DurationMS int64            `json:"duration_ms"`
	Users      int              `json:"users"`
	Items      int              `json:"items"`
	Ratings    int              `json:"ratings"`
	Error      string           `json:"error,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// train runs one training job from the loaded configuration.
func train(ctx context.Context, stdout, stderr io.Writer) int {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Err(err).Msg("Failed to load configuration")
		return 1
	}

	lc := cfg.LoggingOptions()
	lc.Output = stderr
	logging.Init(lc)
	log := logging.WithComponent("cli")

	log.Info().
		Str("algorithm", cfg.Algorithm.Name).
		Int("iterations", cfg.Training.Iterations).
		Int("factors", cfg.Training.Factors).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Configuration loaded")

	data, err := ratings.Synthetic(cfg.Data.Synthetic)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate ratings")
		return 1
	}
	log.Info().
		Int("users", data.NumUsers()).
		Int("items", data.NumItems()).
		Int("ratings", data.Len()).
		Float64("global_mean", data.Mean()).
		Msg("Ratings generated")

	model, err := algorithms.New(data, cfg.Algorithm)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create algorithm")
		return 1
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tm := metrics.NewTrainingMetrics(reg)

	trainer, err := training.New(cfg.Training, logging.WithComponent("training"), training.WithObserver(tm))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create trainer")
		return 1
	}
	if err := trainer.Setup(data.NumUsers(), data.NumItems(), data.Mean()); err != nil {
		log.Error().Err(err).Msg("Failed to set up factors")
		return 1
	}

	if cfg.Metrics.Enabled {
		srv := newMetricsServer(&cfg.Metrics, reg)
		srv.Start()
		defer srv.Shutdown()
	}

	res, runErr := trainer.Run(ctx, model)

	out := summary{
		RunID:      res.RunID,
		Algorithm:  res.Algorithm,
		Outcome:    res.Outcome,
		Iterations: res.Iterations,
		FinalLoss:  finite(res.FinalLoss),
		LearnRate:  finite(res.LearnRate),
		DurationMS: res.Duration.Milliseconds(),
		Users:      data.NumUsers(),
		Items:      data.NumItems(),
		Ratings:    data.Len(),
	}
	if runErr != nil {
		out.Error = runErr.Error()
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error().Err(err).Msg("Failed to write summary")
		return 1
	}

	if runErr != nil {
		return 1
	}
	return 0
}
