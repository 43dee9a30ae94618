// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/mfcore/internal/config"
	"github.com/tomtom215/mfcore/internal/logging"
	"github.com/tomtom215/mfcore/internal/metrics"
)

type summaryDoc struct {
	RunID      string   `json:"run_id"`
	Algorithm  string   `json:"algorithm"`
	Outcome    string   `json:"outcome"`
	Iterations int      `json:"iterations"`
	FinalLoss  *float64 `json:"final_loss"`
	Users      int      `json:"users"`
	Items      int      `json:"items"`
	Ratings    int      `json:"ratings"`
	Error      string   `json:"error"`
}

// smallRun configures a quick, quiet training job.
func smallRun(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	t.Setenv("MFCORE_CONFIG", "")
	t.Setenv("MFCORE_DATA_USERS", "20")
	t.Setenv("MFCORE_DATA_ITEMS", "15")
	t.Setenv("MFCORE_ITERATIONS", "5")
	t.Setenv("MFCORE_LOG_LEVEL", "disabled")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: mfcore")

	stderr.Reset()
	assert.Equal(t, 2, run(context.Background(), []string{"serve"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "serve"`)
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run(context.Background(), []string{"version"}, &stdout, &stderr))
	assert.Equal(t, "mfcore dev\n", stdout.String())
}

func TestRun_Train(t *testing.T) {
	for _, name := range []string{"regsvd", "biasedmf", "dsgd"} {
		t.Run(name, func(t *testing.T) {
			smallRun(t)
			t.Setenv("MFCORE_ALGORITHM", name)

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), []string{"train"}, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())

			var doc summaryDoc
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
			assert.Equal(t, name, doc.Algorithm)
			assert.NotEmpty(t, doc.RunID)
			assert.Contains(t, []string{"converged", "not_converged"}, doc.Outcome)
			assert.GreaterOrEqual(t, doc.Iterations, 1)
			assert.LessOrEqual(t, doc.Iterations, 5)
			require.NotNil(t, doc.FinalLoss)
			assert.Equal(t, 20, doc.Users)
			assert.Equal(t, 15, doc.Items)
			assert.Positive(t, doc.Ratings)
			assert.Empty(t, doc.Error)
		})
	}
}

func TestRun_TrainDiverges(t *testing.T) {
	smallRun(t)
	t.Setenv("MFCORE_ITERATIONS", "50")
	t.Setenv("MFCORE_LEARN_RATE", "-1000")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run(context.Background(), []string{"train"}, &stdout, &stderr))

	var doc summaryDoc
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "diverged", doc.Outcome)
	assert.Nil(t, doc.FinalLoss)
	assert.Contains(t, doc.Error, "NaN or Infinity")
}

func TestRun_TrainCanceled(t *testing.T) {
	smallRun(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run(ctx, []string{"train"}, &stdout, &stderr))

	var doc summaryDoc
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "canceled", doc.Outcome)
	assert.Zero(t, doc.Iterations)
}

func TestRun_TrainInvalidConfig(t *testing.T) {
	smallRun(t)
	t.Setenv("MFCORE_ALGORITHM", "als")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), []string{"train"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	tm := metrics.NewTrainingMetrics(reg)
	tm.Loss.WithLabelValues("regsvd").Set(0.5)

	srv := httptest.NewServer(newMetricsRouter("/metrics", reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(body.String(), `mfcore_training_loss{algorithm="regsvd"} 0.5`))

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	missing, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRun_TrainLogsByComponent(t *testing.T) {
	smallRun(t)
	t.Setenv("MFCORE_LOG_LEVEL", "info")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run(context.Background(), []string{"train"}, &stdout, &stderr))

	var cli, finished string
	for _, line := range strings.Split(stderr.String(), "\n") {
		switch {
		case strings.Contains(line, `"message":"Configuration loaded"`):
			cli = line
		case strings.Contains(line, `"message":"training finished"`):
			finished = line
		}
	}

	assert.Contains(t, cli, `"component":"cli"`)
	assert.Contains(t, finished, `"component":"training"`)
	assert.Contains(t, finished, `"run_id":`)
	assert.Equal(t, 1, strings.Count(finished, `"component"`))
}

func TestMetricsServer_LogsAsMetricsComponent(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	cfg := config.MetricsConfig{Enabled: true, Listen: "127.0.0.1:0", Path: "/metrics"}
	srv := newMetricsServer(&cfg, prometheus.NewRegistry())
	srv.Start()
	srv.Shutdown()

	assert.Contains(t, buf.String(), `"component":"metrics"`)
	assert.Contains(t, buf.String(), "Metrics server listening")
}
