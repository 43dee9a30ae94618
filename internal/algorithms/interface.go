// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/mfcore/internal/factor"
	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

var (
	// ErrNotTrained is returned by Predict before the first epoch.
	ErrNotTrained = errors.New("algorithms: model has not run an epoch")

	// ErrUnknownAlgorithm is returned by New for an unregistered name.
	ErrUnknownAlgorithm = errors.New("algorithms: unknown algorithm")
)

// Model is a training.Algorithm that can also score user-item pairs with
// its own post-processing (biases, clamping to the rating range).
type Model interface {
	training.Algorithm

	// Predict returns the model's rating estimate for dense indices.
	Predict(userIdx, itemIdx int) (float64, error)
}

// BaseAlgorithm provides common functionality for all algorithms.
type BaseAlgorithm struct {
	name string
	data *ratings.Matrix

	// factors and globalMean are captured from the last epoch's Step.
	factors    *factor.Store
	globalMean float64

	mu sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string, data *ratings.Matrix) BaseAlgorithm {
	return BaseAlgorithm{
		name: name,
		data: data,
	}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// Data returns the training ratings.
func (b *BaseAlgorithm) Data() *ratings.Matrix {
	return b.data
}

// IsTrained returns whether at least one epoch has run.
func (b *BaseAlgorithm) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.factors != nil
}

// bind checks that the step's factor tables match the rating matrix and
// remembers them for Predict. Must be called while holding the training lock.
func (b *BaseAlgorithm) bind(step *training.Step) error {
	if step.Factors == nil {
		return training.ErrNotSetup
	}
	if step.Factors.NumUsers() != b.data.NumUsers() || step.Factors.NumItems() != b.data.NumItems() {
		return fmt.Errorf("%w: factors %dx%d, ratings %dx%d", factor.ErrShapeMismatch,
			step.Factors.NumUsers(), step.Factors.NumItems(), b.data.NumUsers(), b.data.NumItems())
	}
	b.factors = step.Factors
	b.globalMean = step.GlobalMean
	return nil
}

// dot returns the inner product of the bound factor rows.
// Must be called while holding the prediction lock.
func (b *BaseAlgorithm) dot(userIdx, itemIdx int) (float64, error) {
	if b.factors == nil {
		return 0, ErrNotTrained
	}
	return b.factors.Predict(userIdx, itemIdx)
}

// acquireTrainLock acquires the exclusive training lock.
func (b *BaseAlgorithm) acquireTrainLock() {
	b.mu.Lock()
}

// releaseTrainLock releases the exclusive training lock.
func (b *BaseAlgorithm) releaseTrainLock() {
	b.mu.Unlock()
}

// acquirePredictLock acquires the shared prediction lock.
func (b *BaseAlgorithm) acquirePredictLock() {
	b.mu.RLock()
}

// releasePredictLock releases the shared prediction lock.
func (b *BaseAlgorithm) releasePredictLock() {
	b.mu.RUnlock()
}

// ContextCancelled checks if the context has been cancelled.
// Epochs only check it before they start so that factor tables are never
// left half-updated.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// sgdStep applies one regularized SGD update to the factor rows pu and qi
// for prediction error e and returns the regularization part of the loss
// evaluated at the old values.
func sgdStep(pu, qi []float64, e, lr, regUser, regItem float64) float64 {
	var reg float64
	for f := range pu {
		puf, qif := pu[f], qi[f]
		pu[f] += lr * (e*qif - regUser*puf)
		qi[f] += lr * (e*puf - regItem*qif)
		reg += regUser*puf*puf + regItem*qif*qif
	}
	return reg
}
