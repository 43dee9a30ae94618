// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package factor

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSetup_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		numUsers   int
		numItems   int
		numFactors int
		wantErr    bool
	}{
		{name: "small", numUsers: 3, numItems: 4, numFactors: 2},
		{name: "single entity", numUsers: 1, numItems: 1, numFactors: 1},
		{name: "default width", numUsers: 50, numItems: 80, numFactors: 10},
		{name: "zero users", numUsers: 0, numItems: 4, numFactors: 2, wantErr: true},
		{name: "zero items", numUsers: 3, numItems: 0, numFactors: 2, wantErr: true},
		{name: "zero factors", numUsers: 3, numItems: 4, numFactors: 0, wantErr: true},
		{name: "negative users", numUsers: -1, numItems: 4, numFactors: 2, wantErr: true},
		{name: "negative factors", numUsers: 3, numItems: 4, numFactors: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, err := Setup(tt.numUsers, tt.numItems, tt.numFactors, 0, 0.1, rand.NewPCG(1, 2))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDimensions), "error %v should wrap ErrInvalidDimensions", err)
				assert.Nil(t, store)
				return
			}

			require.NoError(t, err)
			rows, cols := store.User.Dims()
			assert.Equal(t, tt.numUsers, rows)
			assert.Equal(t, tt.numFactors, cols)
			rows, cols = store.Item.Dims()
			assert.Equal(t, tt.numItems, rows)
			assert.Equal(t, tt.numFactors, cols)
			assert.Equal(t, tt.numUsers, store.NumUsers())
			assert.Equal(t, tt.numItems, store.NumItems())
			assert.Equal(t, tt.numFactors, store.NumFactors())
		})
	}
}

func TestSetup_InitDistribution(t *testing.T) {
	t.Parallel()

	store, err := Setup(400, 300, 25, 0.5, 0.1, rand.NewPCG(7, 11))
	require.NoError(t, err)

	var values []float64
	for _, tbl := range []*Table{store.User, store.Item} {
		for r := 0; r < tbl.Rows(); r++ {
			values = append(values, tbl.Row(r)...)
		}
	}

	mean, std := stat.MeanStdDev(values, nil)
	assert.InDelta(t, 0.5, mean, 0.005)
	assert.InDelta(t, 0.1, std, 0.005)
}

func TestSetup_ZeroStdIsConstant(t *testing.T) {
	t.Parallel()

	store, err := Setup(4, 5, 3, 0.25, 0, rand.NewPCG(1, 1))
	require.NoError(t, err)

	for r := 0; r < store.NumItems(); r++ {
		for c := 0; c < store.NumFactors(); c++ {
			assert.Equal(t, 0.25, store.Item.At(r, c))
		}
	}
}

func TestSetup_SeededIsReproducible(t *testing.T) {
	t.Parallel()

	a, err := Setup(10, 12, 4, 0, 0.1, rand.NewPCG(42, 42))
	require.NoError(t, err)
	b, err := Setup(10, 12, 4, 0, 0.1, rand.NewPCG(42, 42))
	require.NoError(t, err)

	for r := 0; r < 10; r++ {
		assert.Equal(t, a.User.Row(r), b.User.Row(r))
	}
	for r := 0; r < 12; r++ {
		assert.Equal(t, a.Item.Row(r), b.Item.Row(r))
	}
}

func TestPredict_DotProduct(t *testing.T) {
	t.Parallel()

	store, err := Setup(2, 3, 3, 0, 0.1, rand.NewPCG(3, 4))
	require.NoError(t, err)

	copy(store.User.Row(1), []float64{1, 2, 3})
	copy(store.Item.Row(2), []float64{0.5, -1, 2})

	got, err := store.Predict(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1*0.5+2*-1+3*2, got, 1e-12)
}

func TestPredict_PureFunctionOfRows(t *testing.T) {
	t.Parallel()

	store, err := Setup(3, 4, 5, 0, 0.1, rand.NewPCG(5, 6))
	require.NoError(t, err)

	before, err := store.Predict(0, 1)
	require.NoError(t, err)

	// Rows other than the ones used must not influence the result.
	for c := 0; c < store.NumFactors(); c++ {
		store.Item.Set(0, c, 100)
		store.Item.Set(3, c, -100)
		store.User.Set(2, c, 42)
	}

	after, err := store.Predict(0, 1)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	again, err := store.Predict(0, 1)
	require.NoError(t, err)
	assert.Equal(t, after, again)

	// Writing the item row used changes the prediction.
	store.Item.Set(1, 0, store.Item.At(1, 0)+1)
	changed, err := store.Predict(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, after+store.User.At(0, 0), changed, 1e-12)
}

func TestPredict_OutOfRange(t *testing.T) {
	t.Parallel()

	store, err := Setup(2, 3, 2, 0, 0.1, rand.NewPCG(1, 1))
	require.NoError(t, err)

	tests := []struct {
		name    string
		userIdx int
		itemIdx int
	}{
		{name: "user too large", userIdx: 2, itemIdx: 0},
		{name: "negative user", userIdx: -1, itemIdx: 0},
		{name: "item too large", userIdx: 0, itemIdx: 3},
		{name: "negative item", userIdx: 0, itemIdx: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Predict(tt.userIdx, tt.itemIdx)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
		})
	}
}

func TestRowDot_ShapeMismatch(t *testing.T) {
	t.Parallel()

	a, err := NewTable(2, 3)
	require.NoError(t, err)
	b, err := NewTable(2, 4)
	require.NoError(t, err)

	_, err = RowDot(a, 0, b, 0)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestTable_RowAliasesStorage(t *testing.T) {
	t.Parallel()

	tbl, err := NewTable(2, 2)
	require.NoError(t, err)

	row := tbl.Row(1)
	row[0] = 3.5
	assert.Equal(t, 3.5, tbl.At(1, 0))

	tbl.Set(1, 1, -2)
	assert.Equal(t, -2.0, row[1])
}
