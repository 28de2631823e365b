// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Per-column summary statistics over a coordinate sheet (rows = samples,
//     columns = G25 dimensions): means and sample standard deviations.
//
// Determinism & Performance:
//   - Fixed i→j traversal; sums accumulate in row order and are divided once.
//   - Dense fast-path over the flat buffer; At fallback otherwise.

package matrix

import (
	"fmt"
	"math"
)

const (
	opColumnMeans  = "ColumnMeans"
	opColumnStdDev = "ColumnStdDevs"
)

// ColumnMeans returns Σ_i X[i,j] / r for every column j.
//
// Implementation:
//   - Stage 1: validate X.
//   - Stage 2: accumulate column sums (Dense fast-path or At fallback).
//   - Stage 3: divide by the row count.
//
// Errors:
//   - ErrNilMatrix, wrapped At errors on the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnMeans(X Matrix) ([]float64, error) {
	// Stage 1: validation.
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	// Stage 2: sums.
	if err := columnSums(X, means); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}

	// Stage 3: averages.
	for j := range means {
		means[j] /= float64(r)
	}

	return means, nil
}

// ColumnStdDevs returns the per-column means and sample standard deviations
// (divisor r-1). A single-row matrix has zero deviation everywhere.
//
// Implementation:
//   - Stage 1: means via ColumnMeans.
//   - Stage 2: second pass accumulating squared deviations.
//   - Stage 3: divide by r-1 and take square roots.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnStdDevs(X Matrix) (means, stds []float64, err error) {
	// Stage 1: first moment.
	if means, err = ColumnMeans(X); err != nil {
		return nil, nil, matrixErrorf(opColumnStdDev, err)
	}
	r, c := X.Rows(), X.Cols()
	stds = make([]float64, c)
	if r < 2 {
		return means, stds, nil
	}

	// Stage 2: squared deviations.
	var i, j int
	var dv float64
	if d, ok := X.(*Dense); ok {
		var base int
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				dv = d.data[base+j] - means[j]
				stds[j] += dv * dv
			}
		}
	} else {
		var v float64
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, nil, matrixErrorf(opColumnStdDev, fmt.Errorf("At(%d,%d): %w", i, j, err))
				}
				dv = v - means[j]
				stds[j] += dv * dv
			}
		}
	}

	// Stage 3: finalize.
	for j = range stds {
		stds[j] = math.Sqrt(stds[j] / float64(r-1))
	}

	return means, stds, nil
}

// columnSums writes Σ_i X[i,j] into sums (len == Cols, zeroed by the caller).
func columnSums(X Matrix, sums []float64) error {
	r, c := X.Rows(), X.Cols()
	var i, j int
	if d, ok := X.(*Dense); ok {
		var base int
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				sums[j] += d.data[base+j]
			}
		}

		return nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			sums[j] += v
		}
	}

	return nil
}
