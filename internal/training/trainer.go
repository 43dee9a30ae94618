// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package training

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mfcore/internal/convergence"
	"github.com/tomtom215/mfcore/internal/factor"
	"github.com/tomtom215/mfcore/internal/schedule"
)

var (
	// ErrNotSetup is returned when predicting or training before Setup.
	ErrNotSetup = errors.New("training: factors not set up")

	// ErrAlreadySetup is returned when Setup is called twice on a run.
	ErrAlreadySetup = errors.New("training: factors already set up")

	// ErrAlreadyRun is returned when Run is called on a finished run.
	ErrAlreadyRun = errors.New("training: run already started")
)

// Scheduler computes the learning rate of the next epoch.
type Scheduler interface {
	Update(iter int, previousLoss, currentLoss, rate float64) float64
}

// Option customizes a Trainer.
type Option func(*Trainer)

// WithName sets the algorithm name reported by EvaluateConvergence when the
// caller drives epochs itself. Run uses the algorithm's own name otherwise.
func WithName(name string) Option {
	return func(t *Trainer) {
		t.name = name
	}
}

// WithObserver registers an observer of epochs and run completion.
func WithObserver(o Observer) Option {
	return func(t *Trainer) {
		t.observers = append(t.observers, o)
	}
}

// WithScheduler replaces the scheduler derived from Options.Policy.
func WithScheduler(s Scheduler) Option {
	return func(t *Trainer) {
		t.scheduler = s
	}
}

// Trainer owns one training run of a matrix factorization model: its factor
// tables, its TrainingState and the convergence and learning rate policy
// around the epochs of an Algorithm.
//
// A Trainer is not safe for concurrent use. Independent runs use independent
// Trainers.
type Trainer struct {
	opts   Options
	id     string
	name   string
	logger zerolog.Logger

	factors    *factor.Store
	globalMean float64
	state      State

	monitor   *convergence.Monitor
	scheduler Scheduler
	observers []Observer

	// started is set by the first Run, whatever its outcome.
	started bool
}

// New validates opts and creates a Trainer. Records are written to logger
// with a run_id field; the caller picks the component tag.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(opts Options, logger zerolog.Logger, options ...Option) (*Trainer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	t := &Trainer{
		opts:      opts,
		id:        uuid.NewString(),
		scheduler: schedule.New(opts.Policy()),
		state: State{
			PreviousLoss: convergence.NoPriorLoss,
			LearnRate:    opts.LearnRate,
		},
	}
	for _, o := range options {
		o(t)
	}
	t.logger = logger.With().
		Str("run_id", t.id).
		Logger()
	t.monitor = convergence.NewMonitor(t.name, opts.Verbose, t.logger)

	return t, nil
}

// ID returns the run identifier.
func (t *Trainer) ID() string {
	return t.id
}

// Options returns the run options.
func (t *Trainer) Options() Options {
	return t.opts
}

// Factors returns the run's factor tables, or nil before Setup.
func (t *Trainer) Factors() *factor.Store {
	return t.factors
}

// GlobalMean returns the mean rating passed to Setup.
func (t *Trainer) GlobalMean() float64 {
	return t.globalMean
}

// State returns a copy of the training state.
func (t *Trainer) State() State {
	return t.state
}

// LearnRate returns the rate the next epoch will use.
func (t *Trainer) LearnRate() float64 {
	return t.state.LearnRate
}

// Setup allocates and initializes the factor tables for numUsers users and
// numItems items. globalMean is stored read-only for the algorithm.
func (t *Trainer) Setup(numUsers, numItems int, globalMean float64) error {
	if t.factors != nil {
		return ErrAlreadySetup
	}
	if math.IsNaN(globalMean) || math.IsInf(globalMean, 0) {
		return fmt.Errorf("%w: global mean %v is not finite", ErrInvalidConfig, globalMean)
	}

	store, err := factor.Setup(numUsers, numItems, t.opts.Factors,
		t.opts.InitMean, t.opts.InitStd, rand.NewPCG(t.opts.Seed, t.opts.Seed))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	t.factors = store
	t.globalMean = globalMean

	t.logger.Debug().
		Int("num_users", numUsers).
		Int("num_items", numItems).
		Int("num_factors", t.opts.Factors).
		Float64("global_mean", globalMean).
		Msg("factors initialized")

	return nil
}

// Predict returns the factor dot product for a user and item.
func (t *Trainer) Predict(userIdx, itemIdx int) (float64, error) {
	if t.factors == nil {
		return 0, ErrNotSetup
	}
	return t.factors.Predict(userIdx, itemIdx)
}

// ReportLoss records the loss of the epoch that just finished.
func (t *Trainer) ReportLoss(loss float64) {
	t.state.CurrentLoss = loss
}

// EvaluateConvergence judges the reported loss of epoch iter. It returns
// true when the run has converged, and an error wrapping
// convergence.ErrDiverged when the loss is not finite.
func (t *Trainer) EvaluateConvergence(iter int) (bool, error) {
	if t.factors == nil {
		return false, ErrNotSetup
	}

	t.state.Iteration = iter
	t.state.PreviousLoss = t.monitor.PreviousLoss()

	st, err := t.monitor.Evaluate(iter, t.state.CurrentLoss)
	if err != nil {
		return false, fmt.Errorf("%s iter %d: %w", t.name, iter, err)
	}
	return st == convergence.Converged, nil
}

// UpdateLearnRate adapts the learning rate after epoch iter. Call it after
// EvaluateConvergence(iter); before any evaluation there is no prior loss and
// bold driver leaves the rate as on the first epoch.
func (t *Trainer) UpdateLearnRate(iter int) {
	t.state.LearnRate = t.scheduler.Update(iter, t.state.PreviousLoss, t.state.CurrentLoss, t.state.LearnRate)
}

// Run drives epochs 1..Iterations of alg. It stops when the loss converges,
// diverges, the algorithm fails, or ctx is canceled at an epoch boundary.
// Reaching the epoch cap returns Outcome NotConverged and a nil error.
func (t *Trainer) Run(ctx context.Context, alg Algorithm) (Result, error) {
	if t.factors == nil {
		return Result{}, ErrNotSetup
	}
	if t.started || t.state.Iteration != 0 {
		return Result{}, ErrAlreadyRun
	}
	t.started = true
	if t.name == "" {
		t.name = alg.Name()
		t.monitor = convergence.NewMonitor(t.name, t.opts.Verbose, t.logger)
	}

	t.logger.Info().
		Str("algorithm", t.name).
		Int("max_iterations", t.opts.Iterations).
		Float64("learn_rate", t.state.LearnRate).
		Bool("bold_driver", t.opts.BoldDriver).
		Float64("decay", t.opts.Decay).
		Msg("training started")

	start := time.Now()
	res := Result{
		RunID:     t.id,
		Algorithm: t.name,
		Outcome:   NotConverged,
	}

	err := t.loop(ctx, alg, &res)

	res.LearnRate = t.state.LearnRate
	res.Duration = time.Since(start)
	t.finish(res, err)

	return res, err
}

// loop runs the epochs and fills res as it goes.
func (t *Trainer) loop(ctx context.Context, alg Algorithm, res *Result) error {
	for iter := 1; iter <= t.opts.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			res.Outcome = Canceled
			return fmt.Errorf("training canceled before iteration %d: %w", iter, err)
		}

		rate := t.state.LearnRate
		loss, err := alg.Epoch(ctx, &Step{
			Iteration:  iter,
			Factors:    t.factors,
			LearnRate:  rate,
			RegUser:    t.opts.RegUser,
			RegItem:    t.opts.RegItem,
			GlobalMean: t.globalMean,
		})
		if err != nil {
			res.Outcome = Failed
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				res.Outcome = Canceled
			}
			return fmt.Errorf("%s iter %d: %w", t.name, iter, err)
		}

		t.ReportLoss(loss)
		converged, err := t.EvaluateConvergence(iter)

		res.Iterations = iter
		res.FinalLoss = loss
		t.notifyEpoch(iter, rate, converged, err != nil)

		if err != nil {
			res.Outcome = Diverged
			return err
		}
		if converged {
			res.Outcome = Converged
			return nil
		}

		t.UpdateLearnRate(iter)
	}
	return nil
}

// notifyEpoch forwards one evaluated epoch to the observers.
func (t *Trainer) notifyEpoch(iter int, rate float64, converged, diverged bool) {
	if len(t.observers) == 0 {
		return
	}

	ev := EpochEvent{
		RunID:        t.id,
		Algorithm:    t.name,
		Iteration:    iter,
		Loss:         t.state.CurrentLoss,
		PreviousLoss: t.state.PreviousLoss,
		LearnRate:    rate,
		State:        convergence.Running,
		Diverged:     diverged,
	}
	if converged {
		ev.State = convergence.Converged
	}
	for _, o := range t.observers {
		o.ObserveEpoch(ev)
	}
}

// finish logs the run summary and notifies observers.
//
//nolint:gocritic // Result is small enough to pass by value
func (t *Trainer) finish(res Result, err error) {
	var ev *zerolog.Event
	if err != nil {
		ev = t.logger.Error().Err(err)
	} else {
		ev = t.logger.Info()
	}
	ev.Str("algorithm", res.Algorithm).
		Str("outcome", res.Outcome.String()).
		Int("iterations", res.Iterations).
		Float64("final_loss", res.FinalLoss).
		Float64("learn_rate", res.LearnRate).
		Int64("duration_ms", res.Duration.Milliseconds()).
		Msg("training finished")

	for _, o := range t.observers {
		o.ObserveRun(res, err)
	}
}
