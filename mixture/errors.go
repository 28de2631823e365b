package mixture

import "errors"

var (
	// ErrDimensionMismatch indicates vectors of different lengths were combined,
	// or a weight vector does not match the number of sources.
	ErrDimensionMismatch = errors.New("mixture: dimension mismatch")

	// ErrEmptyVector indicates a zero-length vector or an empty source list.
	ErrEmptyVector = errors.New("mixture: empty vector")

	// ErrUnknownMetric indicates a Metric value outside the defined set.
	ErrUnknownMetric = errors.New("mixture: unknown distance metric")
)
