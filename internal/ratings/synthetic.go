// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package ratings

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tomtom215/mfcore/internal/validation"
)

// SyntheticConfig describes a generated low-rank rating matrix.
type SyntheticConfig struct {
	// NumUsers is the number of users.
	// Default: 100.
	NumUsers int `koanf:"num_users" validate:"gt=0"`

	// NumItems is the number of items.
	// Default: 80.
	NumItems int `koanf:"num_items" validate:"gt=0"`

	// Rank is the width of the hidden factors the ratings are drawn from.
	// Default: 4.
	Rank int `koanf:"rank" validate:"gt=0"`

	// Density is the fraction of user-item pairs that are observed.
	// Default: 0.2.
	Density float64 `koanf:"density" validate:"gt=0,lte=1,finite"`

	// Noise is the standard deviation of Gaussian noise added to each rating.
	// Default: 0.1.
	Noise float64 `koanf:"noise" validate:"gte=0,finite"`

	// MinRating and MaxRating bound every generated value.
	// Default: 1 and 5.
	MinRating float64 `koanf:"min_rating" validate:"finite"`
	MaxRating float64 `koanf:"max_rating" validate:"finite,gtfield=MinRating"`

	// Seed makes the dataset reproducible.
	// Default: 7.
	Seed uint64 `koanf:"seed"`
}

// DefaultSyntheticConfig returns a small dataset suitable for smoke runs.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		NumUsers:  100,
		NumItems:  80,
		Rank:      4,
		Density:   0.2,
		Noise:     0.1,
		MinRating: 1,
		MaxRating: 5,
		Seed:      7,
	}
}

// Validate checks the configuration.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c SyntheticConfig) Validate() error {
	if verr := validation.ValidateStruct(&c); verr != nil {
		return fmt.Errorf("%w: synthetic config: %w", ErrInvalidRating, verr)
	}
	return nil
}

// Synthetic draws hidden user and item factors of width cfg.Rank and observes
// a random cfg.Density share of their products, rescaled into
// [MinRating, MaxRating] and perturbed by noise. Every user rates at least
// one item so that no factor row is left untrained.
func Synthetic(cfg SyntheticConfig) (*Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	//nolint:gosec // G404: math/rand is acceptable for data generation (not security)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	unit := distuv.Normal{Mu: 0, Sigma: 1 / math.Sqrt(math.Sqrt(float64(cfg.Rank))), Src: rng}

	users := hidden(cfg.NumUsers, cfg.Rank, unit)
	items := hidden(cfg.NumItems, cfg.Rank, unit)

	mid := (cfg.MinRating + cfg.MaxRating) / 2
	scale := (cfg.MaxRating - cfg.MinRating) / 4
	noise := distuv.Normal{Mu: 0, Sigma: cfg.Noise, Src: rng}

	value := func(u, i int) float64 {
		v := mid + scale*mat.Dot(users.RowView(u), items.RowView(i))
		if cfg.Noise > 0 {
			v += noise.Rand()
		}
		return math.Max(cfg.MinRating, math.Min(cfg.MaxRating, v))
	}

	rs := make([]Rating, 0, int(float64(cfg.NumUsers*cfg.NumItems)*cfg.Density)+cfg.NumUsers)
	for u := 0; u < cfg.NumUsers; u++ {
		rated := false
		for i := 0; i < cfg.NumItems; i++ {
			if rng.Float64() >= cfg.Density {
				continue
			}
			rs = append(rs, Rating{User: u, Item: i, Value: value(u, i)})
			rated = true
		}
		if !rated {
			i := rng.IntN(cfg.NumItems)
			rs = append(rs, Rating{User: u, Item: i, Value: value(u, i)})
		}
	}

	return NewMatrix(cfg.NumUsers, cfg.NumItems, rs)
}

// hidden returns an n x rank matrix of draws from dist.
func hidden(n, rank int, dist distuv.Normal) *mat.Dense {
	data := make([]float64, n*rank)
	for k := range data {
		data[k] = dist.Rand()
	}
	return mat.NewDense(n, rank, data)
}
