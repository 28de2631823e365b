// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernel used by the mixture
// model: a row-major Dense matrix plus the two matrix–vector products the
// admixture solvers need on every iteration.
//
// 🚀 What lives here?
//
//	A source panel S of D coordinates × N populations is stored as a D×N Dense.
//	For a weight vector w (len N) and a target t (len D):
//	  • modeled vector   m = S·w        → MatVecInto
//	  • residual product g = Sᵀ·(m − t) → MatTVecInto
//	A coordinate sheet (rows = samples) summarizes per dimension via
//	ColumnMeans / ColumnStdDevs.
//
// ✨ Key properties:
//   - Safe public surface: At/Set return sentinel errors instead of panicking.
//   - Deterministic loop orders (i→j) so results are bit-stable across runs.
//   - Allocation-free *Into variants for solver hot loops.
//   - Numeric policy: non-finite values are rejected on ingestion.
//
// ⚙️ Usage:
//
//	S, err := matrix.NewFromColumns([][]float64{{1, 0}, {0, 1}})
//	m, err := matrix.MatVec(S, []float64{0.25, 0.75}) // [0.25 0.75]
//
// Complexity:
//
//   - NewDense / NewFromColumns: O(r·c)
//   - MatVec / MatTVec:           O(r·c)
//   - ColumnMeans / ColumnStdDevs: O(r·c)
package matrix
