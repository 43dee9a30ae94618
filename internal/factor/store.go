// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package factor

import (
	"fmt"
	"math/rand/v2"
)

// Store owns the user and item factor tables of one training run.
type Store struct {
	// User is the user latent factor table (numUsers x numFactors).
	User *Table

	// Item is the item latent factor table (numItems x numFactors).
	Item *Table
}

// Setup allocates both factor tables and fills every entry from
// Normal(initMean, initStd) using src. It must be called once per training
// run before any prediction or update.
func Setup(numUsers, numItems, numFactors int, initMean, initStd float64, src rand.Source) (*Store, error) {
	if numUsers <= 0 || numItems <= 0 || numFactors <= 0 {
		return nil, fmt.Errorf("%w: numUsers=%d numItems=%d numFactors=%d",
			ErrInvalidDimensions, numUsers, numItems, numFactors)
	}

	user, err := NewTable(numUsers, numFactors)
	if err != nil {
		return nil, fmt.Errorf("user factors: %w", err)
	}
	item, err := NewTable(numItems, numFactors)
	if err != nil {
		return nil, fmt.Errorf("item factors: %w", err)
	}

	// Users first, then items: a fixed draw order keeps seeded runs reproducible.
	user.Init(initMean, initStd, src)
	item.Init(initMean, initStd, src)

	return &Store{User: user, Item: item}, nil
}

// NumUsers returns the number of user rows.
func (s *Store) NumUsers() int {
	return s.User.Rows()
}

// NumItems returns the number of item rows.
func (s *Store) NumItems() int {
	return s.Item.Rows()
}

// NumFactors returns the latent vector width.
func (s *Store) NumFactors() int {
	return s.User.Cols()
}

// Predict returns the inner product of the latent vectors of userIdx and
// itemIdx. No bias or clamping is applied.
func (s *Store) Predict(userIdx, itemIdx int) (float64, error) {
	if err := s.User.checkRow(userIdx); err != nil {
		return 0, fmt.Errorf("user %d: %w", userIdx, err)
	}
	if err := s.Item.checkRow(itemIdx); err != nil {
		return 0, fmt.Errorf("item %d: %w", itemIdx, err)
	}
	return RowDot(s.User, userIdx, s.Item, itemIdx)
}
