// SPDX-License-Identifier: MIT
// Package matrix - matrix–vector kernels.
//
// Purpose:
//   - Provide y = A·x and y = Aᵀ·x with validation, a *Dense fast-path
//     over the flat buffer, and an interface fallback via At.
//   - Offer allocation-free *Into variants for iterative solvers.
//
// Determinism:
//   - Fixed i→j traversal; accumulation order never depends on data.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opMatVec  = "MatVec"
	opMatTVec = "MatTVec"
)

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum = 0.0

// MatVec computes y = m·x and returns a freshly allocated y (len = Rows).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.Rows())
	if err := MatVecInto(m, x, y); err != nil {
		return nil, err
	}

	return y, nil
}

// MatVecInto computes y = m·x writing into the caller-owned y.
//
// Implementation:
//   - Stage 1: validate m, len(x)==Cols and len(y)==Rows.
//   - Stage 2: *Dense fast-path (row-major dot products) or At fallback.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, wrapped At errors on fallback.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func MatVecInto(m Matrix, x, y []float64) error {
	// Stage 1: validation.
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(y, m.Rows()); err != nil {
		return matrixErrorf(opMatVec, err)
	}

	// Stage 2a: fast-path on the flat buffer.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc, xv float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 { // skip zero weights (pruned sources are common)
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return nil
	}

	// Stage 2b: interface fallback.
	rows, cols := m.Rows(), m.Cols()
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return nil
}

// MatTVec computes y = mᵀ·x and returns a freshly allocated y (len = Cols).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Rows).
//
// Complexity:
//   - Time O(r*c), Space O(c).
func MatTVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	y := make([]float64, m.Cols())
	if err := MatTVecInto(m, x, y); err != nil {
		return nil, err
	}

	return y, nil
}

// MatTVecInto computes y = mᵀ·x writing into the caller-owned y without
// materializing the transpose.
//
// Implementation:
//   - Stage 1: validate m, len(x)==Rows and len(y)==Cols.
//   - Stage 2: zero y, then for each row i scatter x[i]*m[i,:] into y
//     (row-major friendly: the flat buffer is read sequentially).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func MatTVecInto(m Matrix, x, y []float64) error {
	// Stage 1: validation.
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(y, m.Cols()); err != nil {
		return matrixErrorf(opMatTVec, err)
	}

	var i, j int
	for j = range y {
		y[j] = ZeroSum
	}

	// Stage 2a: fast-path.
	if d, ok := m.(*Dense); ok {
		var base int
		var xv float64
		for i = 0; i < d.r; i++ {
			xv = x[i]
			if xv == 0 {
				continue
			}
			base = i * d.c
			for j = 0; j < d.c; j++ {
				y[j] += d.data[base+j] * xv
			}
		}

		return nil
	}

	// Stage 2b: interface fallback.
	rows, cols := m.Rows(), m.Cols()
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return matrixErrorf(opMatTVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[j] += mv * x[i]
		}
	}

	return nil
}
