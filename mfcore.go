// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package mfcore is the public entry point of the latent factor training
// core: factor tables, the training loop with its convergence and learning
// rate policy, and the bundled SGD algorithms.
//
// Example:
//
//	data, _ := mfcore.Synthetic(mfcore.DefaultSyntheticConfig())
//	opts := mfcore.DefaultOptions()
//	opts.Iterations = 100
//	opts.BoldDriver = true
//
//	tr, _ := mfcore.NewTrainer(opts, zerolog.Nop())
//	_ = tr.Setup(data.NumUsers(), data.NumItems(), data.Mean())
//	res, err := tr.Run(ctx, mfcore.NewBiasedMF(data, mfcore.DefaultBiasedMFConfig()))
package mfcore

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/mfcore/internal/algorithms"
	"github.com/tomtom215/mfcore/internal/convergence"
	"github.com/tomtom215/mfcore/internal/factor"
	"github.com/tomtom215/mfcore/internal/ratings"
	"github.com/tomtom215/mfcore/internal/training"
)

// Training

// Trainer owns the factor tables and drives one training run.
type Trainer = training.Trainer

// Options configures a training run.
type Options = training.Options

// TrainerOption customizes a Trainer.
type TrainerOption = training.Option

// Algorithm computes one epoch of updates.
type Algorithm = training.Algorithm

// Step is the per-epoch handle passed to an Algorithm.
type Step = training.Step

// Result summarizes a finished run.
type Result = training.Result

// Outcome is the terminal state of a run.
type Outcome = training.Outcome

// State is the scalar bookkeeping of a run.
type State = training.State

// Observer receives per-epoch and per-run events.
type Observer = training.Observer

// EpochEvent describes one evaluated epoch.
type EpochEvent = training.EpochEvent

// Run outcomes.
const (
	NotConverged = training.NotConverged
	Converged    = training.Converged
	Diverged     = training.Diverged
	Canceled     = training.Canceled
	Failed       = training.Failed
)

// ConvergenceThreshold is the absolute loss below which a run converges.
const ConvergenceThreshold = convergence.Threshold

// Errors.
var (
	ErrInvalidConfig     = training.ErrInvalidConfig
	ErrNotSetup          = training.ErrNotSetup
	ErrAlreadySetup      = training.ErrAlreadySetup
	ErrAlreadyRun        = training.ErrAlreadyRun
	ErrDiverged          = convergence.ErrDiverged
	ErrInvalidDimensions = factor.ErrInvalidDimensions
	ErrIndexOutOfRange   = factor.ErrIndexOutOfRange
	ErrInvalidRating     = ratings.ErrInvalidRating
	ErrUnknownAlgorithm  = algorithms.ErrUnknownAlgorithm
)

// DefaultOptions returns the default options. Iterations must be set.
func DefaultOptions() Options {
	return training.DefaultOptions()
}

// NewTrainer validates opts and creates a Trainer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainer(opts Options, logger zerolog.Logger, options ...TrainerOption) (*Trainer, error) {
	return training.New(opts, logger, options...)
}

// WithObserver registers an Observer.
func WithObserver(o Observer) TrainerOption {
	return training.WithObserver(o)
}

// WithName overrides the algorithm name used in logs and errors.
func WithName(name string) TrainerOption {
	return training.WithName(name)
}

// Ratings

// Matrix holds observed ratings with dense user and item indices.
type Matrix = ratings.Matrix

// Rating is one observed (user, item, value) triple.
type Rating = ratings.Rating

// Builder maps external ids to dense indices.
type Builder = ratings.Builder

// SyntheticConfig configures the generated low-rank dataset.
type SyntheticConfig = ratings.SyntheticConfig

// NewMatrix validates and copies rs.
func NewMatrix(numUsers, numItems int, rs []Rating) (*Matrix, error) {
	return ratings.NewMatrix(numUsers, numItems, rs)
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return ratings.NewBuilder()
}

// DefaultSyntheticConfig returns the default synthetic dataset settings.
func DefaultSyntheticConfig() SyntheticConfig {
	return ratings.DefaultSyntheticConfig()
}

// Synthetic generates a reproducible low-rank rating matrix.
func Synthetic(cfg SyntheticConfig) (*Matrix, error) {
	return ratings.Synthetic(cfg)
}

// Algorithms

// Model is an Algorithm that can also predict.
type Model = algorithms.Model

// AlgorithmConfig selects an algorithm by name.
type AlgorithmConfig = algorithms.Config

// RegSVD is regularized SGD matrix factorization.
type RegSVD = algorithms.RegSVD

// RegSVDConfig configures RegSVD.
type RegSVDConfig = algorithms.RegSVDConfig

// BiasedMF adds user and item biases to RegSVD.
type BiasedMF = algorithms.BiasedMF

// BiasedMFConfig configures BiasedMF.
type BiasedMFConfig = algorithms.BiasedMFConfig

// DSGD is stratified parallel SGD.
type DSGD = algorithms.DSGD

// DSGDConfig configures DSGD.
type DSGDConfig = algorithms.DSGDConfig

// NewAlgorithm creates the algorithm named cfg.Name over data.
//
//nolint:gocritic // Config is small enough to pass by value
func NewAlgorithm(data *Matrix, cfg AlgorithmConfig) (Model, error) {
	return algorithms.New(data, cfg)
}

// AlgorithmNames lists the registered algorithm names.
func AlgorithmNames() []string {
	return algorithms.Names()
}

// NewRegSVD creates a RegSVD model over data.
func NewRegSVD(data *Matrix, cfg RegSVDConfig) *RegSVD {
	return algorithms.NewRegSVD(data, cfg)
}

// DefaultRegSVDConfig returns the default RegSVD settings.
func DefaultRegSVDConfig() RegSVDConfig {
	return algorithms.DefaultRegSVDConfig()
}

// NewBiasedMF creates a BiasedMF model over data.
func NewBiasedMF(data *Matrix, cfg BiasedMFConfig) *BiasedMF {
	return algorithms.NewBiasedMF(data, cfg)
}

// DefaultBiasedMFConfig returns the default BiasedMF settings.
func DefaultBiasedMFConfig() BiasedMFConfig {
	return algorithms.DefaultBiasedMFConfig()
}

// NewDSGD creates a DSGD model over data.
func NewDSGD(data *Matrix, cfg DSGDConfig) *DSGD {
	return algorithms.NewDSGD(data, cfg)
}

// DefaultDSGDConfig returns the default DSGD settings.
func DefaultDSGDConfig() DSGDConfig {
	return algorithms.DefaultDSGDConfig()
}
