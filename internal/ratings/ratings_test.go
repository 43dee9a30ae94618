// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package ratings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	t.Parallel()

	m, err := NewMatrix(2, 3, []Rating{
		{User: 0, Item: 0, Value: 4},
		{User: 1, Item: 2, Value: 2},
		{User: 1, Item: 1, Value: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.NumUsers())
	assert.Equal(t, 3, m.NumItems())
	assert.InDelta(t, 3.0, m.Mean(), 1e-12)

	lo, hi := m.Range()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 4.0, hi)
	assert.Equal(t, Rating{User: 1, Item: 2, Value: 2}, m.At(1))
	assert.Len(t, m.Ratings(), 3)
}

func TestNewMatrix_CopiesInput(t *testing.T) {
	t.Parallel()

	rs := []Rating{{User: 0, Item: 0, Value: 1}}
	m, err := NewMatrix(1, 1, rs)
	require.NoError(t, err)

	rs[0].Value = 99
	assert.Equal(t, 1.0, m.At(0).Value)
}

func TestNewMatrix_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		numUsers int
		numItems int
		ratings  []Rating
		want     error
	}{
		{name: "no users", numUsers: 0, numItems: 1, ratings: []Rating{{}}, want: ErrInvalidRating},
		{name: "empty", numUsers: 1, numItems: 1, want: ErrEmpty},
		{name: "user out of range", numUsers: 1, numItems: 1, ratings: []Rating{{User: 1}}, want: ErrInvalidRating},
		{name: "negative item", numUsers: 1, numItems: 1, ratings: []Rating{{Item: -1}}, want: ErrInvalidRating},
		{name: "NaN value", numUsers: 1, numItems: 1, ratings: []Rating{{Value: math.NaN()}}, want: ErrInvalidRating},
		{name: "infinite value", numUsers: 1, numItems: 1, ratings: []Rating{{Value: math.Inf(1)}}, want: ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := NewMatrix(tt.numUsers, tt.numItems, tt.ratings)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMatrix_Clamp(t *testing.T) {
	t.Parallel()

	m, err := NewMatrix(1, 2, []Rating{{Item: 0, Value: 1}, {Item: 1, Value: 5}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.Clamp(-3))
	assert.Equal(t, 3.5, m.Clamp(3.5))
	assert.Equal(t, 5.0, m.Clamp(7))
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	require.NoError(t, b.Add("alice", "dune", 5))
	require.NoError(t, b.Add("bob", "dune", 3))
	require.NoError(t, b.Add("alice", "alien", 4))

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumUsers())
	assert.Equal(t, 2, m.NumItems())
	assert.Equal(t, 3, m.Len())
	assert.InDelta(t, 4.0, m.Mean(), 1e-12)

	u, ok := b.UserIndex("bob")
	require.True(t, ok)
	assert.Equal(t, 1, u)
	assert.Equal(t, "bob", b.UserID(u))

	i, ok := b.ItemIndex("alien")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "alien", b.ItemID(i))

	_, ok = b.UserIndex("carol")
	assert.False(t, ok)

	assert.Equal(t, Rating{User: 0, Item: 1, Value: 4}, m.At(2))
}

func TestBuilder_Invalid(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrEmpty)

	assert.ErrorIs(t, b.Add("alice", "dune", math.NaN()), ErrInvalidRating)
	_, ok := b.UserIndex("alice")
	assert.False(t, ok, "rejected ratings do not register ids")
}

func TestSynthetic(t *testing.T) {
	t.Parallel()

	cfg := DefaultSyntheticConfig()
	m, err := Synthetic(cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.NumUsers, m.NumUsers())
	assert.Equal(t, cfg.NumItems, m.NumItems())

	lo, hi := m.Range()
	assert.GreaterOrEqual(t, lo, cfg.MinRating)
	assert.LessOrEqual(t, hi, cfg.MaxRating)

	// Roughly Density of all pairs are observed.
	share := float64(m.Len()) / float64(cfg.NumUsers*cfg.NumItems)
	assert.InDelta(t, cfg.Density, share, 0.05)

	seen := make([]bool, cfg.NumUsers)
	for _, r := range m.Ratings() {
		seen[r.User] = true
	}
	for u, ok := range seen {
		assert.True(t, ok, "user %d has no rating", u)
	}
}

func TestSynthetic_Reproducible(t *testing.T) {
	t.Parallel()

	cfg := DefaultSyntheticConfig()
	a, err := Synthetic(cfg)
	require.NoError(t, err)
	b, err := Synthetic(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Ratings(), b.Ratings())

	cfg.Seed++
	c, err := Synthetic(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Ratings(), c.Ratings())
}

func TestSynthetic_SparseStillCoversUsers(t *testing.T) {
	t.Parallel()

	cfg := DefaultSyntheticConfig()
	cfg.Density = 0.001
	cfg.Noise = 0

	m, err := Synthetic(cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.Len(), cfg.NumUsers)
}

func TestSyntheticConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*SyntheticConfig)
		field  string
	}{
		{name: "zero users", modify: func(c *SyntheticConfig) { c.NumUsers = 0 }, field: "num_users"},
		{name: "zero rank", modify: func(c *SyntheticConfig) { c.Rank = 0 }, field: "rank"},
		{name: "density above one", modify: func(c *SyntheticConfig) { c.Density = 1.5 }, field: "density"},
		{name: "zero density", modify: func(c *SyntheticConfig) { c.Density = 0 }, field: "density"},
		{name: "negative noise", modify: func(c *SyntheticConfig) { c.Noise = -1 }, field: "noise"},
		{name: "inverted range", modify: func(c *SyntheticConfig) { c.MaxRating = 0 }, field: "max_rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultSyntheticConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidRating)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	assert.NoError(t, DefaultSyntheticConfig().Validate())
}
