package simplex

import "errors"

var (
	// ErrInvalidInput indicates an empty vector was supplied for projection.
	ErrInvalidInput = errors.New("simplex: input vector must be non-empty")

	// ErrNotOnSimplex indicates a vector has a negative entry or does not sum
	// to one within the requested tolerance.
	ErrNotOnSimplex = errors.New("simplex: vector is not on the probability simplex")
)
