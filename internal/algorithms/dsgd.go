// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package algorithms

import (
	"context"
	"math/rand/v2"
	"runtime"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/mfcore/internal/parallel"
	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

// DSGDConfig contains configuration for the DSGD algorithm.
type DSGDConfig struct {
	// Workers is the number of row and column blocks, and so the number of
	// strata processed concurrently. Capped at min(numUsers, numItems).
	// Default: runtime.NumCPU().
	Workers int

	// Seed for the stratum order and the per-block shuffles.
	// If 0, uses a default seed.
	Seed uint64
}

// DefaultDSGDConfig returns default DSGD configuration.
func DefaultDSGDConfig() DSGDConfig {
	return DSGDConfig{
		Workers: runtime.NumCPU(),
		Seed:    42,
	}
}

// DSGD implements distributed stratified SGD for matrix factorization.
// Reference: "Large-Scale Matrix Factorization with Distributed Stochastic
// Gradient Descent" (Gemulla, Nijkamp, Haas, Sismanis, 2011)
//
// Users and items are cut into W blocks each. An epoch is W sub-epochs; in
// sub-epoch s worker b trains block (b, (b+s) mod W). The W blocks of a
// stratum share no user and no item, so workers never write the same factor
// row. Each sub-epoch waits for all of its workers.
type DSGD struct {
	BaseAlgorithm
	config DSGDConfig

	workers int

	// blocks[ub][ib] holds the indices of the ratings in user block ub and
	// item block ib.
	blocks [][][]int

	// rng orders the strata; blockRNG[ub] shuffles the blocks of user block ub.
	rng      *rand.Rand
	blockRNG []*rand.Rand
}

// NewDSGD creates a new DSGD algorithm over data.
//
//nolint:gosec // G404: math/rand is acceptable for ML training (not security)
func NewDSGD(data *ratings.Matrix, cfg DSGDConfig) *DSGD {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}

	w := min(cfg.Workers, data.NumUsers(), data.NumItems())

	blocks := make([][][]int, w)
	for ub := range blocks {
		blocks[ub] = make([][]int, w)
	}
	for k, r := range data.Ratings() {
		ub := r.User * w / data.NumUsers()
		ib := r.Item * w / data.NumItems()
		blocks[ub][ib] = append(blocks[ub][ib], k)
	}

	blockRNG := make([]*rand.Rand, w)
	for ub := range blockRNG {
		blockRNG[ub] = rand.New(rand.NewPCG(cfg.Seed, uint64(ub)+1))
	}

	return &DSGD{
		BaseAlgorithm: NewBaseAlgorithm("dsgd", data),
		config:        cfg,
		workers:       w,
		blocks:        blocks,
		rng:           rand.New(rand.NewPCG(cfg.Seed, 0)),
		blockRNG:      blockRNG,
	}
}

// Workers returns the effective number of strata per sub-epoch.
func (a *DSGD) Workers() int {
	return a.workers
}

// Epoch runs the W sub-epochs in random order and returns the loss.
func (a *DSGD) Epoch(ctx context.Context, step *training.Step) (float64, error) {
	a.acquireTrainLock()
	defer a.releaseTrainLock()

	if ContextCancelled(ctx) {
		return 0, ctx.Err()
	}
	if err := a.bind(step); err != nil {
		return 0, err
	}

	lr := step.StepSize()
	users, items := step.Factors.User, step.Factors.Item

	// Block losses are reduced in block order, so the epoch loss does not
	// depend on goroutine scheduling.
	var loss float64
	for _, s := range a.rng.Perm(a.workers) {
		loss += parallel.Sum(a.workers, func(ub int) float64 {
			blk := a.blocks[ub][(ub+s)%a.workers]
			rng := a.blockRNG[ub]
			rng.Shuffle(len(blk), func(i, j int) {
				blk[i], blk[j] = blk[j], blk[i]
			})

			var blockLoss float64
			for _, k := range blk {
				r := a.data.At(k)
				pu := users.Row(r.User)
				qi := items.Row(r.Item)

				e := r.Value - floats.Dot(pu, qi)
				blockLoss += e * e
				blockLoss += sgdStep(pu, qi, e, lr, step.RegUser, step.RegItem)
			}
			return blockLoss
		}, parallel.Workers(a.workers))
	}

	return 0.5 * loss, nil
}

// Predict returns p_u . q_i clamped to the observed rating range.
func (a *DSGD) Predict(userIdx, itemIdx int) (float64, error) {
	a.acquirePredictLock()
	defer a.releasePredictLock()

	score, err := a.dot(userIdx, itemIdx)
	if err != nil {
		return 0, err
	}
	return a.data.Clamp(score), nil
}
