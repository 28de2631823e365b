package matrix_test

import (
	"testing"

	"github.com/katalvlaran/g25mix/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type and force the At fallback.
type hide struct{ matrix.Matrix }

// TestMatVec checks y = A·x on both the Dense fast-path and the fallback.
func TestMatVec(t *testing.T) {
	a, err := matrix.NewFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	x := []float64{1, 0, -1}

	fast, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, fast)

	slow, err := matrix.MatVec(hide{a}, x)
	require.NoError(t, err)
	assert.Equal(t, fast, slow, "fast-path and fallback must agree")
}

// TestMatTVec checks y = Aᵀ·x on both paths.
func TestMatTVec(t *testing.T) {
	a, err := matrix.NewFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	x := []float64{1, 2}

	fast, err := matrix.MatTVec(a, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 12, 15}, fast)

	slow, err := matrix.MatTVec(hide{a}, x)
	require.NoError(t, err)
	assert.Equal(t, fast, slow)
}

// TestMatVecShapeErrors covers nil and length mismatches.
func TestMatVecShapeErrors(t *testing.T) {
	a, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	_, err = matrix.MatVec(nil, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.MatVec(a, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.MatTVec(a, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	err = matrix.MatVecInto(a, []float64{1, 2, 3}, make([]float64, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestMatVecIntoReusesBuffer ensures the Into variant overwrites stale output.
func TestMatVecIntoReusesBuffer(t *testing.T) {
	a, err := matrix.NewFromColumns([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	y := []float64{42, 42}
	require.NoError(t, matrix.MatVecInto(a, []float64{0.25, 0.75}, y))
	assert.Equal(t, []float64{0.25, 0.75}, y)

	g := []float64{7, 7}
	require.NoError(t, matrix.MatTVecInto(a, []float64{0, 0}, g))
	assert.Equal(t, []float64{0, 0}, g)
}
