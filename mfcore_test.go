// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package mfcore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/mfcore"
)

func TestPublicAPI_TrainBiasedMF(t *testing.T) {
	cfg := mfcore.DefaultSyntheticConfig()
	cfg.NumUsers, cfg.NumItems = 30, 25
	data, err := mfcore.Synthetic(cfg)
	require.NoError(t, err)

	opts := mfcore.DefaultOptions()
	opts.Iterations = 10
	opts.BoldDriver = true

	tr, err := mfcore.NewTrainer(opts, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, tr.Setup(data.NumUsers(), data.NumItems(), data.Mean()))

	model := mfcore.NewBiasedMF(data, mfcore.DefaultBiasedMFConfig())
	res, err := tr.Run(context.Background(), model)
	require.NoError(t, err)
	assert.Equal(t, "biasedmf", res.Algorithm)
	assert.Contains(t, []mfcore.Outcome{mfcore.Converged, mfcore.NotConverged}, res.Outcome)

	lo, hi := data.Range()
	p, err := model.Predict(0, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p, lo)
	assert.LessOrEqual(t, p, hi)
}

func TestPublicAPI_Errors(t *testing.T) {
	_, err := mfcore.NewTrainer(mfcore.DefaultOptions(), zerolog.Nop())
	assert.True(t, errors.Is(err, mfcore.ErrInvalidConfig))

	_, err = mfcore.NewMatrix(1, 1, []mfcore.Rating{{User: 2, Item: 0, Value: 1}})
	assert.True(t, errors.Is(err, mfcore.ErrInvalidRating))

	data, err := mfcore.NewMatrix(1, 1, []mfcore.Rating{{User: 0, Item: 0, Value: 1}})
	require.NoError(t, err)
	_, err = mfcore.NewAlgorithm(data, mfcore.AlgorithmConfig{Name: "als"})
	assert.True(t, errors.Is(err, mfcore.ErrUnknownAlgorithm))

	assert.Equal(t, []string{"biasedmf", "dsgd", "regsvd"}, mfcore.AlgorithmNames())
}
