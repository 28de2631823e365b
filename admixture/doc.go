// Package admixture estimates a target population as a convex combination of
// source populations: it searches for weights w on the probability simplex
// (wᵢ ≥ 0, Σwᵢ = 1) minimizing the distance between S·w and the target.
//
// 🚀 Strategies (both implement Solver):
//
//   - GradientProjection: uniform start, fixed-step gradient descent on the
//     squared error followed by a Euclidean projection onto the simplex after
//     every step. Stops when ‖Δw‖₂ falls below Tolerance or at MaxIterations
//     and returns the best-so-far weights, not the last iterate.
//
//   - CoordinateDescent: uniform start, cyclic coordinate search over a
//     coarse step set with clip-and-rescale after every trial, greedily
//     accepting the first improving step per coordinate. A fine step set is
//     tried only when a coarse pass improves nothing; the search ends when
//     neither does. Weights below PruneThreshold are then zeroed and the
//     vector rescaled, which yields sparse, readable mixtures.
//
// ✨ Contracts:
//   - Poor fit is never an error: Result.Distance > 0 just means the target
//     is not exactly reachable from the sources.
//   - Structural violations (no sources, empty target, dimension mismatch)
//     fail before any iteration with ErrInvalidInput / ErrDimensionMismatch.
//   - Numeric degeneracies inside the loop (a trial clamped to all zeros)
//     reset to uniform weights and are counted in Result.Resets.
//   - Distances follow Options.Metric; RMS is the canonical convention.
//
// Concurrency:
//
//	A Solver holds only its Options. Every Solve call owns its buffers, so
//	one Solver value may be shared by many goroutines.
//
// ⚙️ Usage:
//
//	opts := admixture.DefaultOptions()
//	opts.Algo = admixture.CoordinateDescent
//	res, err := admixture.Solve(target, sources, opts)
//	// res.Weights[i] is the share of sources[i]; res.Distance the fit.
//
// Nearest ranks a whole collection by distance to a target, which is the
// usual first step when picking candidate sources.
package admixture
