// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package training

import (
	"errors"
	"fmt"

	"github.com/tomtom215/mfcore/internal/schedule"
	"github.com/tomtom215/mfcore/internal/validation"
)

// ErrInvalidConfig is returned for options or setup parameters that can never
// produce a run. The run does not start.
var ErrInvalidConfig = errors.New("training: invalid configuration")

// Options is the validated configuration of one training run. It is
// immutable once a Trainer has been created from it.
type Options struct {
	// Iterations is the hard epoch cap. Required.
	Iterations int `koanf:"iterations" validate:"gt=0"`

	// LearnRate is the initial SGD step size. A negative value fixes the
	// rate and disables adaptation.
	// Default: 0.01.
	LearnRate float64 `koanf:"learn_rate" validate:"finite"`

	// MaxLearnRate clamps the adapted rate. Values <= 0 disable the clamp.
	// Default: 1000.0.
	MaxLearnRate float64 `koanf:"max_learn_rate" validate:"finite"`

	// RegUser is the user factor regularization strength.
	// Default: 0.01.
	RegUser float64 `koanf:"reg_user" validate:"gte=0,finite"`

	// RegItem is the item factor regularization strength.
	// Default: 0.01.
	RegItem float64 `koanf:"reg_item" validate:"gte=0,finite"`

	// Factors is the latent vector width.
	// Default: 10.
	Factors int `koanf:"factors" validate:"gt=0"`

	// BoldDriver selects bold-driver learning rate adaptation.
	// Default: false.
	BoldDriver bool `koanf:"bold_driver"`

	// Decay is the constant learning rate decay, active only in (0, 1).
	// Default: 1.0 (inactive).
	Decay float64 `koanf:"decay" validate:"finite"`

	// InitMean is the mean of the factor initialization distribution.
	// Default: 0.0.
	InitMean float64 `koanf:"init_mean" validate:"finite"`

	// InitStd is the standard deviation of the factor initialization
	// distribution.
	// Default: 0.1.
	InitStd float64 `koanf:"init_std" validate:"gte=0,finite"`

	// Seed makes factor initialization reproducible.
	// Default: 42.
	Seed uint64 `koanf:"seed"`

	// Verbose emits one diagnostic record per epoch.
	// Default: false.
	Verbose bool `koanf:"verbose"`
}

// DefaultOptions returns the default options. Iterations has no default and
// must be set by the caller.
func DefaultOptions() Options {
	return Options{
		LearnRate:    0.01,
		MaxLearnRate: 1000.0,
		RegUser:      0.01,
		RegItem:      0.01,
		Factors:      10,
		BoldDriver:   false,
		Decay:        1.0,
		InitMean:     0.0,
		InitStd:      0.1,
		Seed:         42,
	}
}

// Validate checks that the options can drive a run.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (o Options) Validate() error {
	if verr := validation.ValidateStruct(&o); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, verr)
	}
	return nil
}

// Policy returns the learning rate policy described by the options.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (o Options) Policy() schedule.Policy {
	return schedule.Policy{
		BoldDriver:   o.BoldDriver,
		Decay:        o.Decay,
		MaxLearnRate: o.MaxLearnRate,
	}
}
