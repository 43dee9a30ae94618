// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package algorithms

import (
	"fmt"
	"sort"

	"github.com/tomtom215/mfcore/internal/ratings"
)

// Config selects and configures an algorithm by name.
type Config struct {
	// Name is one of Names().
	// Default: "biasedmf".
	Name string `koanf:"name" validate:"required,oneof=regsvd biasedmf dsgd"`

	// RegBias is the BiasedMF bias regularization.
	// Default: 0.01.
	RegBias float64 `koanf:"reg_bias" validate:"gte=0,finite"`

	// Workers is the DSGD stratum count; 0 uses the CPU count.
	// Default: 0.
	Workers int `koanf:"workers" validate:"gte=0"`

	// Seed drives shuffling and algorithm-owned initialization.
	// Default: 42.
	Seed uint64 `koanf:"seed"`
}

// DefaultConfig returns the default algorithm configuration.
func DefaultConfig() Config {
	return Config{
		Name:    "biasedmf",
		RegBias: 0.01,
		Seed:    42,
	}
}

type constructor func(data *ratings.Matrix, cfg Config) Model

var registry = map[string]constructor{
	"regsvd": func(data *ratings.Matrix, cfg Config) Model {
		return NewRegSVD(data, RegSVDConfig{Seed: cfg.Seed})
	},
	"biasedmf": func(data *ratings.Matrix, cfg Config) Model {
		c := DefaultBiasedMFConfig()
		c.RegBias = cfg.RegBias
		c.Seed = cfg.Seed
		return NewBiasedMF(data, c)
	},
	"dsgd": func(data *ratings.Matrix, cfg Config) Model {
		return NewDSGD(data, DSGDConfig{Workers: cfg.Workers, Seed: cfg.Seed})
	},
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the algorithm named cfg.Name over data.
//
//nolint:gocritic // Config is small enough to pass by value
func New(data *ratings.Matrix, cfg Config) (Model, error) {
	ctor, ok := registry[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownAlgorithm, cfg.Name, Names())
	}
	return ctor(data, cfg), nil
}
