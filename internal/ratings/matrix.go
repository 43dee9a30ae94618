// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

// Package ratings holds the observed user-item ratings that factorization
// algorithms train on.
//
// Users and items are addressed by dense 0-based indices so that they map
// directly onto factor table rows. Builder converts external identifiers
// into dense indices; Synthetic generates reproducible low-rank data.
package ratings

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRating is returned for a rating with an out-of-range index or
	// a non-finite value.
	ErrInvalidRating = errors.New("ratings: invalid rating")

	// ErrEmpty is returned when a matrix would hold no ratings.
	ErrEmpty = errors.New("ratings: no ratings")
)

// Rating is one observed (user, item, value) triple.
type Rating struct {
	User  int
	Item  int
	Value float64
}

// Matrix is an immutable sparse rating matrix in coordinate form.
type Matrix struct {
	ratings  []Rating
	numUsers int
	numItems int

	mean float64
	min  float64
	max  float64
}

// NewMatrix validates rs against the entity counts and builds a Matrix.
// The slice is copied.
func NewMatrix(numUsers, numItems int, rs []Rating) (*Matrix, error) {
	if numUsers <= 0 || numItems <= 0 {
		return nil, fmt.Errorf("%w: numUsers=%d numItems=%d", ErrInvalidRating, numUsers, numItems)
	}
	if len(rs) == 0 {
		return nil, ErrEmpty
	}

	m := &Matrix{
		ratings:  make([]Rating, len(rs)),
		numUsers: numUsers,
		numItems: numItems,
		min:      math.Inf(1),
		max:      math.Inf(-1),
	}

	var sum float64
	for k, r := range rs {
		if r.User < 0 || r.User >= numUsers || r.Item < 0 || r.Item >= numItems {
			return nil, fmt.Errorf("%w: rating %d (user %d, item %d) outside %dx%d",
				ErrInvalidRating, k, r.User, r.Item, numUsers, numItems)
		}
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return nil, fmt.Errorf("%w: rating %d has value %v", ErrInvalidRating, k, r.Value)
		}

		m.ratings[k] = r
		sum += r.Value
		m.min = math.Min(m.min, r.Value)
		m.max = math.Max(m.max, r.Value)
	}
	m.mean = sum / float64(len(rs))

	return m, nil
}

// Len returns the number of observed ratings.
func (m *Matrix) Len() int {
	return len(m.ratings)
}

// At returns the k-th rating.
func (m *Matrix) At(k int) Rating {
	return m.ratings[k]
}

// Ratings returns the underlying ratings. Callers must not modify them.
func (m *Matrix) Ratings() []Rating {
	return m.ratings
}

// NumUsers returns the number of user rows.
func (m *Matrix) NumUsers() int {
	return m.numUsers
}

// NumItems returns the number of item columns.
func (m *Matrix) NumItems() int {
	return m.numItems
}

// Mean returns the global mean of all observed ratings.
func (m *Matrix) Mean() float64 {
	return m.mean
}

// Range returns the smallest and largest observed rating.
func (m *Matrix) Range() (lo, hi float64) {
	return m.min, m.max
}

// Clamp limits v to the observed rating range.
func (m *Matrix) Clamp(v float64) float64 {
	return math.Max(m.min, math.Min(m.max, v))
}
