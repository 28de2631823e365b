// Package simplex implements the probability-simplex utilities shared by the
// admixture solvers.
//
// 🚀 What is the probability simplex?
//
//	Δⁿ = { w ∈ ℝⁿ : wᵢ ≥ 0, Σ wᵢ = 1 }. Admixture proportions live on Δⁿ:
//	every weight is a share of ancestry and the shares add up to one.
//
// ✨ Key features:
//   - Project: exact Euclidean projection of any real vector onto Δⁿ
//     (sort-based, O(n log n)), followed by renormalization against
//     floating-point drift.
//   - ClipRescale: cheap clamp-to-zero + divide-by-sum retraction used by
//     coordinate search; degenerates safely to the uniform vector.
//   - Prune: zero weights below a noise threshold and retract again.
//   - Validate: check membership in Δⁿ within a tolerance.
//
// ⚙️ Usage:
//
//	w, err := simplex.Project([]float64{0.8, 0.6, -0.2}) // [0.6 0.4 0]
//
// None of the functions log or panic on user input.
package simplex
