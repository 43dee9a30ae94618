// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package convergence decides after every epoch whether a factorization run
// has converged, is still running, or has diverged.
//
// Convergence is judged on the loss itself: a run is converged once
// |loss| < Threshold. The loss delta against the previous epoch is computed
// and logged but does not take part in the decision.
package convergence

import (
	"errors"
	"math"

	"github.com/rs/zerolog"
)

// Threshold is the absolute loss below which a run counts as converged.
const Threshold = 1e-5

// ErrDiverged is returned when the reported loss is NaN or infinite. It is
// fatal for the run.
var ErrDiverged = errors.New("loss = NaN or Infinity: current settings does not fit the recommender, change the settings and try again")

// NoPriorLoss is the previous-loss sentinel of a run that has not finished
// an epoch yet.
var NoPriorLoss = math.Inf(1)

// State is the outcome of evaluating one epoch.
type State int

const (
	// Running means training should continue.
	Running State = iota
	// Converged is terminal: training stops successfully.
	Converged
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	default:
		return "unknown"
	}
}

// Monitor tracks the loss across epochs of one training run.
type Monitor struct {
	algorithm    string
	verbose      bool
	logger       zerolog.Logger
	previousLoss float64
}

// NewMonitor creates a monitor for the named algorithm. When verbose is set
// every evaluation emits one diagnostic record on logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewMonitor(algorithm string, verbose bool, logger zerolog.Logger) *Monitor {
	return &Monitor{
		algorithm:    algorithm,
		verbose:      verbose,
		logger:       logger,
		previousLoss: NoPriorLoss,
	}
}

// PreviousLoss returns the loss of the last evaluated epoch, or NoPriorLoss.
func (m *Monitor) PreviousLoss() float64 {
	return m.previousLoss
}

// Evaluate judges the loss reported for epoch iter and records it as the
// previous loss for the next call.
//
// A NaN or infinite loss returns ErrDiverged; the previous loss is left
// untouched in that case since the run must not continue.
func (m *Monitor) Evaluate(iter int, loss float64) (State, error) {
	delta := m.previousLoss - loss

	if m.verbose {
		ev := m.logger.Info().
			Str("algorithm", m.algorithm).
			Int("iter", iter).
			Float64("loss", loss)
		if !math.IsInf(m.previousLoss, 1) {
			ev = ev.Float64("delta_loss", delta)
		}
		ev.Msg("epoch finished")
	}

	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return Running, ErrDiverged
	}

	converged := math.Abs(loss) < Threshold
	m.previousLoss = loss

	if converged {
		return Converged, nil
	}
	return Running, nil
}

// Reset forgets the previous loss.
func (m *Monitor) Reset() {
	m.previousLoss = NoPriorLoss
}
