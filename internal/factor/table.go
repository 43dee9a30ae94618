// MFCore - Latent Factor Training Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mfcore

package factor

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInvalidDimensions is returned when a table or store is requested
	// with a non-positive entity or factor count.
	ErrInvalidDimensions = errors.New("factor: dimensions must be positive")

	// ErrIndexOutOfRange is returned when a row index falls outside the
	// bounds established at setup.
	ErrIndexOutOfRange = errors.New("factor: index out of range")

	// ErrShapeMismatch is returned when two rows of different width are
	// multiplied.
	ErrShapeMismatch = errors.New("factor: factor width mismatch")
)

// Table is a dense latent factor table: one row per entity, one column per
// latent factor.
type Table struct {
	data *mat.Dense
}

// NewTable allocates a zeroed rows x cols table.
func NewTable(rows, cols int) (*Table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidDimensions, rows, cols)
	}
	return &Table{data: mat.NewDense(rows, cols, nil)}, nil
}

// Dims returns the number of rows and factor columns.
func (t *Table) Dims() (rows, cols int) {
	return t.data.Dims()
}

// Rows returns the number of entities in the table.
func (t *Table) Rows() int {
	r, _ := t.data.Dims()
	return r
}

// Cols returns the latent factor width.
func (t *Table) Cols() int {
	_, c := t.data.Dims()
	return c
}

// At returns the value at row r, factor c. It panics if either index is
// out of range, like mat.Dense.
func (t *Table) At(r, c int) float64 {
	return t.data.At(r, c)
}

// Set writes v at row r, factor c.
func (t *Table) Set(r, c int, v float64) {
	t.data.Set(r, c, v)
}

// Row returns the latent vector of entity r. The slice aliases the table
// storage, so writes through it update the table in place.
func (t *Table) Row(r int) []float64 {
	return t.data.RawRowView(r)
}

// Matrix returns a read-only view of the table for gonum routines.
func (t *Table) Matrix() mat.Matrix {
	return t.data
}

// Init overwrites every entry with an independent draw from
// Normal(mean, std). A nil src draws from the global source.
func (t *Table) Init(mean, std float64, src rand.Source) {
	dist := distuv.Normal{Mu: mean, Sigma: std, Src: src}
	rows, cols := t.data.Dims()
	for r := 0; r < rows; r++ {
		row := t.data.RawRowView(r)
		for c := 0; c < cols; c++ {
			row[c] = dist.Rand()
		}
	}
}

// checkRow reports whether r addresses a row of t.
func (t *Table) checkRow(r int) error {
	if rows := t.Rows(); r < 0 || r >= rows {
		return fmt.Errorf("%w: row %d not in [0, %d)", ErrIndexOutOfRange, r, rows)
	}
	return nil
}

// RowDot returns the inner product of row ar of a and row br of b.
func RowDot(a *Table, ar int, b *Table, br int) (float64, error) {
	if err := a.checkRow(ar); err != nil {
		return 0, err
	}
	if err := b.checkRow(br); err != nil {
		return 0, err
	}
	if a.Cols() != b.Cols() {
		return 0, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, a.Cols(), b.Cols())
	}
	return mat.Dot(a.data.RowView(ar), b.data.RowView(br)), nil
}
