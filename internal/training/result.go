// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package training

import (
	"fmt"
	"time"

	"github.com/tomtom215/mfcore/internal/convergence"
)

// State is the scalar bookkeeping of one training run.
type State struct {
	// Iteration is the last evaluated epoch (0 before the first).
	Iteration int

	// CurrentLoss is the loss reported for Iteration.
	CurrentLoss float64

	// PreviousLoss is the loss of the epoch before Iteration, or
	// convergence.NoPriorLoss.
	PreviousLoss float64

	// LearnRate is the rate the next epoch will use.
	LearnRate float64
}

// Outcome is the terminal state of a training run.
type Outcome int

const (
	// NotConverged means the epoch cap was reached. Not an error: callers
	// decide whether to keep the model.
	NotConverged Outcome = iota
	// Converged means the loss fell below the convergence threshold.
	Converged
	// Diverged means the loss became NaN or infinite.
	Diverged
	// Canceled means the context was canceled at an epoch boundary.
	Canceled
	// Failed means the algorithm returned an error.
	Failed
)

var outcomeNames = map[Outcome]string{
	NotConverged: "not_converged",
	Converged:    "converged",
	Diverged:     "diverged",
	Canceled:     "canceled",
	Failed:       "failed",
}

// String returns the snake_case name of the outcome.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result summarizes a finished training run.
type Result struct {
	// RunID identifies the run in logs and metrics.
	RunID string

	// Algorithm is the name of the algorithm that was trained.
	Algorithm string

	// Outcome is the terminal state.
	Outcome Outcome

	// Iterations is the number of epochs whose loss was evaluated.
	Iterations int

	// FinalLoss is the last reported loss.
	FinalLoss float64

	// LearnRate is the rate after the last epoch.
	LearnRate float64

	// Duration is the wall time of Run.
	Duration time.Duration
}

// EpochEvent is delivered to observers after every evaluated epoch.
type EpochEvent struct {
	RunID        string
	Algorithm    string
	Iteration    int
	Loss         float64
	PreviousLoss float64
	LearnRate    float64
	State        convergence.State
	Diverged     bool
}

// Observer receives training progress. Calls happen on the training
// goroutine, between epochs.
type Observer interface {
	ObserveEpoch(ev EpochEvent)
	ObserveRun(res Result, err error)
}
