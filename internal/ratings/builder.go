// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package ratings

import (
	"fmt"
	"math"
)

// Builder collects ratings keyed by external user and item identifiers and
// assigns dense indices in first-seen order.
type Builder struct {
	// userIndex maps user ID to matrix row
	userIndex map[string]int

	// itemIndex maps item ID to matrix row
	itemIndex map[string]int

	// indexToUser maps matrix row to user ID
	indexToUser []string

	// indexToItem maps matrix row to item ID
	indexToItem []string

	ratings []Rating
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		userIndex: make(map[string]int),
		itemIndex: make(map[string]int),
	}
}

// Add records one rating. Unknown identifiers get the next free index.
func (b *Builder) Add(userID, itemID string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: user %q item %q has value %v", ErrInvalidRating, userID, itemID, value)
	}

	u, ok := b.userIndex[userID]
	if !ok {
		u = len(b.indexToUser)
		b.userIndex[userID] = u
		b.indexToUser = append(b.indexToUser, userID)
	}
	i, ok := b.itemIndex[itemID]
	if !ok {
		i = len(b.indexToItem)
		b.itemIndex[itemID] = i
		b.indexToItem = append(b.indexToItem, itemID)
	}

	b.ratings = append(b.ratings, Rating{User: u, Item: i, Value: value})
	return nil
}

// Build returns the matrix of every rating added so far.
func (b *Builder) Build() (*Matrix, error) {
	if len(b.ratings) == 0 {
		return nil, ErrEmpty
	}
	return NewMatrix(len(b.indexToUser), len(b.indexToItem), b.ratings)
}

// UserIndex returns the dense index of an external user ID.
func (b *Builder) UserIndex(userID string) (int, bool) {
	u, ok := b.userIndex[userID]
	return u, ok
}

// ItemIndex returns the dense index of an external item ID.
func (b *Builder) ItemIndex(itemID string) (int, bool) {
	i, ok := b.itemIndex[itemID]
	return i, ok
}

// UserID returns the external ID of dense user index u.
func (b *Builder) UserID(u int) string {
	return b.indexToUser[u]
}

// ItemID returns the external ID of dense item index i.
func (b *Builder) ItemID(i int) string {
	return b.indexToItem[i]
}
