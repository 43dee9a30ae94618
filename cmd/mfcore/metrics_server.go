// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mfcore/internal/config"
	"github.com/tomtom215/mfcore/internal/logging"
)

const metricsShutdownTimeout = 5 * time.Second

// metricsServer exposes the run's registry over HTTP while training.
type metricsServer struct {
	srv    *http.Server
	logger zerolog.Logger
}

func newMetricsRouter(path string, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle(path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func newMetricsServer(cfg *config.MetricsConfig, gatherer prometheus.Gatherer) *metricsServer {
	return &metricsServer{
		srv: &http.Server{
			Addr:              cfg.Listen,
			Handler:           newMetricsRouter(cfg.Path, gatherer),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logging.WithComponent("metrics"),
	}
}

// Start serves in the background. Listen errors are logged, not fatal:
// training proceeds without the endpoint.
func (m *metricsServer) Start() {
	m.logger.Info().Str("addr", m.srv.Addr).Msg("Metrics server listening")
	go func() {
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Warn().Err(err).Msg("Metrics server failed, continuing without it")
		}
	}()
}

// Shutdown stops the server, waiting for in-flight scrapes.
func (m *metricsServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := m.srv.Shutdown(ctx); err != nil {
		m.logger.Error().Err(err).Msg("Metrics server shutdown failed")
	}
}
