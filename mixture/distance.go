package mixture

import (
	"fmt"
	"math"
	"strings"
)

// Metric selects the distance convention.
type Metric int

const (
	// MetricRMS is the root of the mean squared difference (default).
	MetricRMS Metric = iota

	// MetricEuclidean is the root of the summed squared difference.
	MetricEuclidean
)

// String returns the config/CLI name of the metric.
func (m Metric) String() string {
	switch m {
	case MetricRMS:
		return "rms"
	case MetricEuclidean:
		return "euclidean"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric maps "rms" / "euclidean" (case-insensitive) to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rms":
		return MetricRMS, nil
	case "euclidean", "l2":
		return MetricEuclidean, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMetric)
	}
}

// Distance evaluates the metric between a and b.
func (m Metric) Distance(a, b []float64) (float64, error) {
	switch m {
	case MetricRMS:
		return RMS(a, b)
	case MetricEuclidean:
		return Euclidean(a, b)
	default:
		return 0, ErrUnknownMetric
	}
}

// RMS returns sqrt(mean((aᵢ − bᵢ)²)).
//
// Errors:
//   - ErrEmptyVector if len(a) == 0.
//   - ErrDimensionMismatch if len(a) != len(b).
func RMS(a, b []float64) (float64, error) {
	ss, err := sumSquares(a, b)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(ss / float64(len(a))), nil
}

// Euclidean returns sqrt(Σ (aᵢ − bᵢ)²).
//
// Errors: same as RMS.
func Euclidean(a, b []float64) (float64, error) {
	ss, err := sumSquares(a, b)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(ss), nil
}

// sumSquares validates lengths and returns Σ (aᵢ − bᵢ)².
func sumSquares(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("len %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	if len(a) == 0 {
		return 0, ErrEmptyVector
	}

	return rawSumSquares(a, b), nil
}

// rawSumSquares assumes equal non-zero lengths.
func rawSumSquares(a, b []float64) float64 {
	var ss, d float64
	for i := range a {
		d = a[i] - b[i]
		ss += d * d
	}

	return ss
}
