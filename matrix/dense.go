// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Enforce finite values on ingestion so solver kernels never see NaN/Inf.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Column: O(r).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxColumn  = "Column"
	ctxFromCol = "NewFromColumns"
	ctxFromRow = "NewFromRows"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w"; the sentinel is preserved.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	// make() zero-fills the buffer deterministically.
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFromColumns builds a len(cols[0])×len(cols) Dense whose j-th column is cols[j].
// This is the natural layout for a source panel: one column per population.
//
// Implementation:
//   - Stage 1: validate non-empty input and the first column length (D).
//   - Stage 2: verify every column has length D and finite entries.
//   - Stage 3: scatter columns into the row-major buffer (i*c + j).
//
// Errors:
//   - ErrInvalidDimensions if there are no columns or the first column is empty.
//   - ErrDimensionMismatch if any column length differs from D.
//   - ErrNaNInf on non-finite input.
//
// Complexity:
//   - Time O(D*N), Space O(D*N).
func NewFromColumns(cols [][]float64) (*Dense, error) {
	// Stage 1: shape probe.
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, matrixErrorf(ctxFromCol, ErrInvalidDimensions)
	}
	var (
		n = len(cols)
		d = len(cols[0])
	)

	// Stage 2 + 3: validate and scatter in one deterministic j→i pass.
	m := &Dense{r: d, c: n, data: make([]float64, d*n)}
	var i, j int
	for j = 0; j < n; j++ {
		if len(cols[j]) != d {
			return nil, fmt.Errorf("%s: column %d has length %d, want %d: %w",
				ctxFromCol, j, len(cols[j]), d, ErrDimensionMismatch)
		}
		for i = 0; i < d; i++ {
			if isNonFinite(cols[j][i]) {
				return nil, denseErrorf(ctxFromCol, i, j, ErrNaNInf)
			}
			m.data[i*n+j] = cols[j][i]
		}
	}

	return m, nil
}

// NewFromRows builds a len(rows)×len(rows[0]) Dense copying rows verbatim.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch (ragged rows), ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(ctxFromRow, ErrInvalidDimensions)
	}
	var (
		r = len(rows)
		c = len(rows[0])
	)
	m := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has length %d, want %d: %w",
				ctxFromRow, i, len(rows[i]), c, ErrDimensionMismatch)
		}
		for j = 0; j < c; j++ {
			if isNonFinite(rows[i][j]) {
				return nil, denseErrorf(ctxFromRow, i, j, ErrNaNInf)
			}
		}
		copy(m.data[i*c:(i+1)*c], rows[i])
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// At returns the element at (i,j) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, denseErrorf(ctxAt, i, j, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set writes v at (i,j). Non-finite v is rejected with ErrNaNInf.
// Complexity: O(1).
func (m *Dense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return denseErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	if isNonFinite(v) {
		return denseErrorf(ctxSet, i, j, ErrNaNInf)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Column copies column j into dst (allocating when dst is nil or too short)
// and returns the filled slice.
//
// Errors:
//   - ErrOutOfRange if j is outside [0, Cols).
//
// Complexity: O(r).
func (m *Dense) Column(j int, dst []float64) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxColumn, 0, j, ErrOutOfRange)
	}
	if cap(dst) < m.r {
		dst = make([]float64, m.r)
	}
	dst = dst[:m.r]
	for i := 0; i < m.r; i++ {
		dst[i] = m.data[i*m.c+j]
	}

	return dst, nil
}

// Clone returns a deep copy of the matrix.
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// String renders the matrix one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
