package simplex

import (
	"fmt"
	"math"
	"sort"
)

// DefaultTolerance is the absolute tolerance used by Validate callers that
// have no stronger requirement.
const DefaultTolerance = 1e-9

// Project returns the Euclidean projection of v onto the probability simplex.
// v is not modified.
//
// Algorithm:
//  1. Sort a copy of v descending: u₁ ≥ u₂ ≥ … ≥ uₙ.
//  2. For k = 1..n compute t_k = (Σ_{i≤k} uᵢ − 1) / k; ρ is the largest k with u_k > t_k.
//  3. θ = t_ρ.
//  4. wᵢ = max(0, vᵢ − θ).
//  5. Divide by the realized sum to neutralize residual floating-point drift.
//
// Errors:
//   - ErrInvalidInput if v is empty.
//
// Complexity: O(n log n) time, O(n) space.
func Project(v []float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, ErrInvalidInput
	}
	out := make([]float64, len(v))
	ProjectInto(out, v, make([]float64, len(v)))

	return out, nil
}

// ProjectInto writes the projection of v into dst using scratch as sort space.
// dst, v and scratch must have equal, non-zero length; dst may alias v.
// It is the allocation-free form used inside solver loops.
func ProjectInto(dst, v, scratch []float64) {
	n := len(v)

	// Stage 1: sorted copy (descending).
	copy(scratch, v)
	sort.Sort(sort.Reverse(sort.Float64Slice(scratch)))

	// Stage 2: find ρ and keep the prefix sum that defines θ.
	var (
		sum   float64
		theta float64
		found bool
	)
	for k := 0; k < n; k++ {
		sum += scratch[k]
		t := (sum - 1) / float64(k+1)
		if scratch[k] > t {
			theta = t
			found = true
		}
	}
	// Only reachable with NaN input; u₁ > t₁ always holds for finite values.
	if !found {
		fillUniform(dst)
		return
	}

	// Stage 3: shift and clip.
	for i := 0; i < n; i++ {
		dst[i] = math.Max(0, v[i]-theta)
	}

	// Stage 4: renormalize (sum is ≈1 already).
	rescale(dst)
}

// ClipRescale clamps negative entries of w to zero and divides by the sum so
// that w lies on the simplex. If the clamped sum is zero or not finite the
// vector is reset to uniform and reset is true. w is modified in place.
//
// Complexity: O(n).
func ClipRescale(w []float64) (reset bool) {
	for i, x := range w {
		if x < 0 || math.IsNaN(x) {
			w[i] = 0
		}
	}

	return !rescale(w)
}

// Prune zeroes every weight strictly below threshold and retracts the result
// back onto the simplex with ClipRescale. Survivors only grow on rescale, so
// no entry of the result lies in (0, threshold).
//
// When every entry falls below threshold (possible once len(w) > 1/threshold)
// w collapses onto the vertex of its largest entry, lowest index on ties, and
// collapsed is true.
//
// Complexity: O(n).
func Prune(w []float64, threshold float64) (collapsed bool) {
	if len(w) == 0 {
		return false
	}
	var (
		top       int
		survivors int
	)
	for i, x := range w {
		if x > w[top] || math.IsNaN(w[top]) {
			top = i
		}
		if x >= threshold {
			survivors++
		}
	}
	if survivors == 0 {
		for i := range w {
			w[i] = 0
		}
		w[top] = 1

		return true
	}
	for i, x := range w {
		if x < threshold {
			w[i] = 0
		}
	}
	ClipRescale(w)

	return false
}

// Uniform returns the barycenter of the n-simplex: n entries of 1/n.
// It returns nil for n <= 0.
func Uniform(n int) []float64 {
	if n <= 0 {
		return nil
	}
	w := make([]float64, n)
	fillUniform(w)

	return w
}

// Validate reports ErrNotOnSimplex when w has a negative entry or its sum
// differs from 1 by more than tol, and ErrInvalidInput when w is empty.
func Validate(w []float64, tol float64) error {
	if len(w) == 0 {
		return ErrInvalidInput
	}
	var sum float64
	for i, x := range w {
		if x < 0 || math.IsNaN(x) {
			return fmt.Errorf("index %d = %g: %w", i, x, ErrNotOnSimplex)
		}
		sum += x
	}
	if math.Abs(sum-1) > tol {
		return fmt.Errorf("sum = %.12g: %w", sum, ErrNotOnSimplex)
	}

	return nil
}

// rescale divides w by its sum. It returns false, after resetting w to
// uniform, when the sum is not a positive finite number.
func rescale(w []float64) bool {
	var sum float64
	for _, x := range w {
		sum += x
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		fillUniform(w)
		return false
	}
	for i := range w {
		w[i] /= sum
	}

	return true
}

func fillUniform(w []float64) {
	u := 1.0 / float64(len(w))
	for i := range w {
		w[i] = u
	}
}
