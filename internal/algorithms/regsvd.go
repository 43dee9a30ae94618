// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package algorithms

import (
	"context"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

// RegSVDConfig contains configuration for the RegSVD algorithm.
type RegSVDConfig struct {
	// Seed for the per-epoch shuffle of the ratings.
	// If 0, uses a default seed.
	Seed uint64
}

// DefaultRegSVDConfig returns default RegSVD configuration.
func DefaultRegSVDConfig() RegSVDConfig {
	return RegSVDConfig{
		Seed: 42,
	}
}

// RegSVD implements regularized SVD-style matrix factorization trained by
// stochastic gradient descent.
// Reference: "Improving regularized singular value decomposition for
// collaborative filtering" (Paterek, 2007)
//
// The model predicts r(u,i) = p_u . q_i and minimizes
// 1/2 * sum_{(u,i)} (r_ui - p_u . q_i)^2 + regUser*||p_u||^2 + regItem*||q_i||^2.
type RegSVD struct {
	BaseAlgorithm
	config RegSVDConfig

	rng   *rand.Rand
	order []int
}

// NewRegSVD creates a new RegSVD algorithm over data.
func NewRegSVD(data *ratings.Matrix, cfg RegSVDConfig) *RegSVD {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	order := make([]int, data.Len())
	for k := range order {
		order[k] = k
	}

	//nolint:gosec // G404: math/rand is acceptable for ML training (not security)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	return &RegSVD{
		BaseAlgorithm: NewBaseAlgorithm("regsvd", data),
		config:        cfg,
		rng:           rng,
		order:         order,
	}
}

// Epoch runs one SGD pass over the shuffled ratings and returns the loss.
func (a *RegSVD) Epoch(ctx context.Context, step *training.Step) (float64, error) {
	a.acquireTrainLock()
	defer a.releaseTrainLock()

	if ContextCancelled(ctx) {
		return 0, ctx.Err()
	}
	if err := a.bind(step); err != nil {
		return 0, err
	}

	a.rng.Shuffle(len(a.order), func(i, j int) {
		a.order[i], a.order[j] = a.order[j], a.order[i]
	})

	lr := step.StepSize()
	users, items := step.Factors.User, step.Factors.Item

	var loss float64
	for _, k := range a.order {
		r := a.data.At(k)
		pu := users.Row(r.User)
		qi := items.Row(r.Item)

		e := r.Value - floats.Dot(pu, qi)
		loss += e * e
		loss += sgdStep(pu, qi, e, lr, step.RegUser, step.RegItem)
	}

	return 0.5 * loss, nil
}

// Predict returns p_u . q_i clamped to the observed rating range.
func (a *RegSVD) Predict(userIdx, itemIdx int) (float64, error) {
	a.acquirePredictLock()
	defer a.releasePredictLock()

	score, err := a.dot(userIdx, itemIdx)
	if err != nil {
		return 0, err
	}
	return a.data.Clamp(score), nil
}
