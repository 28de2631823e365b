// Package mixture implements the linear mixture model and the distance metric
// used to score how well a weighted blend of source vectors reconstructs a
// target vector.
//
// Model:
//
//	modeled = Σᵢ wᵢ · sourceᵢ     (a D-vector for N sources of dimension D)
//
// Distance:
//
//	RMS(a, b)       = sqrt( (1/D) · Σⱼ (aⱼ − bⱼ)² )   ← canonical
//	Euclidean(a, b) = sqrt(        Σⱼ (aⱼ − bⱼ)² )
//
// RMS is the convention used throughout g25mix: it keeps distances
// comparable across coordinate sets of different dimensionality. Euclidean is
// available for comparison with tools that report the raw norm; the two differ
// by the constant factor sqrt(D) and must not be mixed within one deployment.
//
// Panel stores the N source vectors as the columns of a D×N matrix.Dense so
// solvers can evaluate S·w and Sᵀ·r with allocation-free kernels.
package mixture
