// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package training

import (
	"context"
	"math"

	"github.com/tomtom215/mfcore/internal/factor"
)

// Algorithm is a concrete factorization algorithm: given the factors of the
// run it performs one epoch of updates and reports the epoch loss.
//
// Epoch may parallelize its updates internally, but every write to the
// factor tables must be complete when it returns.
type Algorithm interface {
	// Name returns the algorithm identifier used in logs and metrics.
	Name() string

	// Epoch performs one full pass over the observations.
	Epoch(ctx context.Context, step *Step) (float64, error)
}

// Step is the handle passed to Algorithm.Epoch. It carries the factor
// tables owned by the run and the hyper-parameters for this epoch.
type Step struct {
	// Iteration is the 1-based epoch index.
	Iteration int

	// Factors are the run's factor tables, updated in place.
	Factors *factor.Store

	// LearnRate is the scheduled rate for this epoch. A negative value
	// marks a fixed rate; use StepSize for the magnitude.
	LearnRate float64

	// RegUser is the user factor regularization strength.
	RegUser float64

	// RegItem is the item factor regularization strength.
	RegItem float64

	// GlobalMean is the mean of all observed ratings.
	GlobalMean float64
}

// StepSize returns the SGD step size for this epoch.
func (s *Step) StepSize() float64 {
	return math.Abs(s.LearnRate)
}
