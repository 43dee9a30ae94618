// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package algorithms

import (
	"context"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tomtom215/mfcore/internal/factor"
	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

// BiasedMFConfig contains configuration for the BiasedMF algorithm.
type BiasedMFConfig struct {
	// RegBias is the L2 regularization of the user and item biases.
	// Default: 0.01.
	RegBias float64

	// BiasInitStd is the standard deviation of the initial biases, drawn
	// around zero.
	// Default: 0.1.
	BiasInitStd float64

	// Seed for bias initialization and the per-epoch shuffle.
	// If 0, uses a default seed.
	Seed uint64
}

// DefaultBiasedMFConfig returns default BiasedMF configuration.
func DefaultBiasedMFConfig() BiasedMFConfig {
	return BiasedMFConfig{
		RegBias:     0.01,
		BiasInitStd: 0.1,
		Seed:        42,
	}
}

// BiasedMF implements biased matrix factorization.
// Reference: "Matrix Factorization Techniques for Recommender Systems"
// (Koren, Bell, Volinsky, 2009)
//
// The model predicts r(u,i) = mu + b_u + b_i + p_u . q_i where mu is the
// global mean. Biases are owned by the algorithm; the latent factors are
// owned by the training run.
type BiasedMF struct {
	BaseAlgorithm
	config BiasedMFConfig

	userBias []float64
	itemBias []float64

	rng   *rand.Rand
	order []int
}

// NewBiasedMF creates a new BiasedMF algorithm over data.
func NewBiasedMF(data *ratings.Matrix, cfg BiasedMFConfig) *BiasedMF {
	if cfg.RegBias < 0 {
		cfg.RegBias = 0.01
	}
	if cfg.BiasInitStd < 0 {
		cfg.BiasInitStd = 0.1
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	//nolint:gosec // G404: math/rand is acceptable for ML training (not security)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	dist := distuv.Normal{Mu: 0, Sigma: cfg.BiasInitStd, Src: rng}

	userBias := make([]float64, data.NumUsers())
	for u := range userBias {
		userBias[u] = dist.Rand()
	}
	itemBias := make([]float64, data.NumItems())
	for i := range itemBias {
		itemBias[i] = dist.Rand()
	}

	order := make([]int, data.Len())
	for k := range order {
		order[k] = k
	}

	return &BiasedMF{
		BaseAlgorithm: NewBaseAlgorithm("biasedmf", data),
		config:        cfg,
		userBias:      userBias,
		itemBias:      itemBias,
		rng:           rng,
		order:         order,
	}
}

// Epoch runs one SGD pass over the shuffled ratings and returns the loss.
func (a *BiasedMF) Epoch(ctx context.Context, step *training.Step) (float64, error) {
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
	regB := a.config.RegBias
	users, items := step.Factors.User, step.Factors.Item

	var loss float64
	for _, k := range a.order {
		r := a.data.At(k)
		pu := users.Row(r.User)
		qi := items.Row(r.Item)
		bu := a.userBias[r.User]
		bi := a.itemBias[r.Item]

		e := r.Value - (step.GlobalMean + bu + bi + floats.Dot(pu, qi))
		loss += e*e + regB*bu*bu + regB*bi*bi

		a.userBias[r.User] += lr * (e - regB*bu)
		a.itemBias[r.Item] += lr * (e - regB*bi)
		loss += sgdStep(pu, qi, e, lr, step.RegUser, step.RegItem)
	}

	return 0.5 * loss, nil
}

// Predict returns mu + b_u + b_i + p_u . q_i clamped to the observed rating
// range.
func (a *BiasedMF) Predict(userIdx, itemIdx int) (float64, error) {
	a.acquirePredictLock()
	defer a.releasePredictLock()

	score, err := a.dot(userIdx, itemIdx)
	if err != nil {
		return 0, err
	}
	score += a.globalMean + a.userBias[userIdx] + a.itemBias[itemIdx]
	return a.data.Clamp(score), nil
}

// UserBias returns the learned bias of user u, or an error wrapping
// factor.ErrIndexOutOfRange when u is not a user of the training data.
func (a *BiasedMF) UserBias(u int) (float64, error) {
	a.acquirePredictLock()
	defer a.releasePredictLock()
	return biasAt(a.userBias, u, "user")
}

// ItemBias returns the learned bias of item i, or an error wrapping
// factor.ErrIndexOutOfRange when i is not an item of the training data.
func (a *BiasedMF) ItemBias(i int) (float64, error) {
	a.acquirePredictLock()
	defer a.releasePredictLock()
	return biasAt(a.itemBias, i, "item")
}

func biasAt(biases []float64, idx int, kind string) (float64, error) {
	if idx < 0 || idx >= len(biases) {
		return 0, fmt.Errorf("%s %d: %w: not in [0, %d)", kind, idx, factor.ErrIndexOutOfRange, len(biases))
	}
	return biases[idx], nil
}
