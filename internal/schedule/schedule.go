// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package schedule adapts the SGD learning rate between epochs.
//
// Two policies are supported and at most one applies per epoch:
//
//   - Bold driver (Gemulla et al., "Large-scale matrix factorization with
//     distributed stochastic gradient descent", KDD 2011): grow the rate by 5%
//     after an epoch that lowered the loss, halve it otherwise. Never applied
//     on the first epoch.
//   - Constant decay (Niu et al., "Hogwild!", NIPS 2011): multiply the rate by
//     a fixed factor in (0, 1) after every epoch.
//
// Bold driver wins when both are configured and the epoch is past the first.
// The result is then clamped to MaxLearnRate when that ceiling is positive.
// A negative learning rate marks a fixed rate and is never adapted.
package schedule

import "math"

const (
	// BoldDriverIncrease scales the rate after an improving epoch.
	BoldDriverIncrease = 1.05

	// BoldDriverDecrease scales the rate after a non-improving epoch.
	BoldDriverDecrease = 0.5
)

// Policy is the immutable learning rate configuration of a run.
type Policy struct {
	// BoldDriver selects the adaptive bold-driver policy.
	BoldDriver bool

	// Decay is the constant multiplicative decay factor.
	// Only active when 0 < Decay < 1.
	Decay float64

	// MaxLearnRate is the upper clamp. Values <= 0 disable clamping.
	MaxLearnRate float64
}

// DecayActive reports whether constant decay is configured.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (p Policy) DecayActive() bool {
	return p.Decay > 0 && p.Decay < 1
}

// Scheduler applies a Policy once per completed epoch.
type Scheduler struct {
	policy Policy
}

// New creates a scheduler for the given policy.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func New(p Policy) *Scheduler {
	return &Scheduler{policy: p}
}

// Policy returns the scheduler's policy.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// Update returns the learning rate for the epoch after iter, given the loss
// of the epoch before iter (previousLoss) and the loss of iter (currentLoss).
// Bold driver needs a prior loss: while previousLoss is +Inf (no epoch
// evaluated before iter) the rate is treated as on the first epoch.
func (s *Scheduler) Update(iter int, previousLoss, currentLoss, rate float64) float64 {
	if rate < 0 {
		return rate
	}

	next := rate
	switch {
	case s.policy.BoldDriver && iter > 1 && !math.IsInf(previousLoss, 1):
		if math.Abs(previousLoss) > math.Abs(currentLoss) {
			next = rate * BoldDriverIncrease
		} else {
			next = rate * BoldDriverDecrease
		}
	case s.policy.DecayActive():
		next = rate * s.policy.Decay
	}

	if s.policy.MaxLearnRate > 0 && next > s.policy.MaxLearnRate {
		next = s.policy.MaxLearnRate
	}
	return next
}
