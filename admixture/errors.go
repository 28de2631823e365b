package admixture

import (
	"errors"

	"github.com/katalvlaran/g25mix/mixture"
)

var (
	// ErrInvalidInput indicates an empty source list, an empty target or
	// non-finite input coordinates.
	ErrInvalidInput = errors.New("admixture: invalid input")

	// ErrDimensionMismatch indicates a source whose length differs from the
	// target's. It is the same sentinel mixture uses.
	ErrDimensionMismatch = mixture.ErrDimensionMismatch

	// ErrBadOptions indicates an Options value that fails Validate.
	ErrBadOptions = errors.New("admixture: invalid options")

	// ErrUnsupportedAlgorithm indicates an Algorithm value with no solver.
	ErrUnsupportedAlgorithm = errors.New("admixture: unsupported algorithm")
)
