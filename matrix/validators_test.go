// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/g25mix/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateNotNil covers untyped and typed nil inputs.
func TestValidateNotNil(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	var d *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)

	ok, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateNotNil(ok))
}

// TestValidateVecLen covers nil and wrong-length vectors.
func TestValidateVecLen(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
}

// TestValidateFinite rejects NaN and infinities.
func TestValidateFinite(t *testing.T) {
	require.NoError(t, matrix.ValidateFinite([]float64{0, -1, 1e300}))
	require.ErrorIs(t, matrix.ValidateFinite([]float64{1, math.Inf(1)}), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFinite([]float64{math.NaN()}), matrix.ErrNaNInf)
}
