// Package g25mix estimates ancestry proportions from Global25 (G25) PCA
// coordinates: a target population is modeled as a convex blend of source
// populations, and the blend weights are reported as percentages.
//
// 🚀 What is g25mix?
//
//	A small, deterministic toolkit that brings together:
//		• Parsing: labeled coordinate sheets, optional prefix aggregation
//		• Geometry: Euclidean simplex projection, clip-and-rescale, pruning
//		• Modeling: modeled vector, RMS / Euclidean distance, gradient
//		• Solvers: projected gradient and multi-scale coordinate descent
//		• Reporting: percentages above a visibility threshold
//
// ✨ Guarantees
//
//   - Every returned weight vector is non-negative and sums to 1.
//   - Dimension mismatches are detected before any iteration.
//   - Both solvers are deterministic: same input, same output.
//
// Under the hood, everything is organized into subpackages:
//
//	coords/    - LabeledVector, Collection, sheet parsing and aggregation
//	simplex/   - projection onto the probability simplex, prune, uniform
//	matrix/    - row-major Dense panel, S·w and Sᵀ·r kernels, column stats
//	mixture/   - Panel, Workspace, distance metrics and the RMS gradient
//	admixture/ - Solver interface, GradientSolver, CoordinateSolver, Nearest
//	report/    - significant components, text and table rendering
//
// The g25mix command (cmd/g25mix) wires these into a CLI with YAML/env
// configuration, structured logging, a bounded worker pool for batch
// targets and an optional Prometheus textfile export.
//
// Quick start:
//
//	sources, _ := coords.Load(sheet, coords.WithAggregate())
//	res, _ := admixture.Solve(target, sources.Coords(), admixture.DefaultOptions())
//	rep, _ := report.New(res, sources.Labels())
//	fmt.Print(rep.Text())
//
// See each subpackage's doc.go for API details and complexity notes.
package g25mix
