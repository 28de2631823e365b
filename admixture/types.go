package admixture

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/g25mix/mixture"
)

// Algorithm selects a solver strategy.
type Algorithm int

const (
	// GradientProjection is projected gradient descent.
	GradientProjection Algorithm = iota

	// CoordinateDescent is multi-scale cyclic coordinate descent.
	CoordinateDescent
)

// String returns the short CLI name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case GradientProjection:
		return "gradient"
	case CoordinateDescent:
		return "coordinate"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "gradient" / "coordinate" (case-insensitive) to an
// Algorithm. The empty string selects CoordinateDescent.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "coordinate", "coord", "cd":
		return CoordinateDescent, nil
	case "gradient", "grad", "pgd":
		return GradientProjection, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedAlgorithm)
	}
}

// Defaults (single source of truth).
const (
	DefaultMaxIterations      = 1000
	DefaultLearningRate       = 0.01
	DefaultTolerance          = 1e-6
	DefaultCoordMaxIterations = 5000
	DefaultPruneThreshold     = 0.001
)

// DefaultCoarseSteps returns the coarse perturbation schedule.
func DefaultCoarseSteps() []float64 { return []float64{-0.1, -0.05, -0.01, 0.01, 0.05, 0.1} }

// DefaultFineSteps returns the fine perturbation schedule.
func DefaultFineSteps() []float64 { return []float64{-0.001, -0.0005, 0.0005, 0.001} }

// Options configures both strategies. Fields that a strategy does not use are
// ignored by it but still validated.
type Options struct {
	// Algo selects the strategy used by Solve and New.
	Algo Algorithm

	// Metric is the distance reported and minimized by the search.
	Metric mixture.Metric

	// GradientProjection.
	MaxIterations int     // iteration cap (>0)
	LearningRate  float64 // fixed step size η (>0)
	Tolerance     float64 // stop when ‖Δw‖₂ < Tolerance (≥0)

	// CoordinateDescent.
	CoordMaxIterations int       // outer-iteration cap (>0)
	CoarseSteps        []float64 // tried in order per coordinate (non-empty, non-zero)
	FineSteps          []float64 // tried when a coarse pass improves nothing
	PruneThreshold     float64   // weights below it are zeroed, in [0,1)

	// OnIteration, when non-nil, is called once per (outer) iteration with the
	// 1-based iteration number and the best distance seen so far.
	OnIteration func(iter int, best float64)
}

// DefaultOptions returns the recommended configuration:
// CoordinateDescent, RMS, 1000/0.01/1e-6 for the gradient strategy and
// 5000 / ±0.1,±0.05,±0.01 / ±0.001,±0.0005 / 0.001 for coordinate descent.
func DefaultOptions() Options {
	return Options{
		Algo:               CoordinateDescent,
		Metric:             mixture.MetricRMS,
		MaxIterations:      DefaultMaxIterations,
		LearningRate:       DefaultLearningRate,
		Tolerance:          DefaultTolerance,
		CoordMaxIterations: DefaultCoordMaxIterations,
		CoarseSteps:        DefaultCoarseSteps(),
		FineSteps:          DefaultFineSteps(),
		PruneThreshold:     DefaultPruneThreshold,
	}
}

// Validate reports the first nonsensical field, wrapped in ErrBadOptions.
func (o Options) Validate() error {
	switch {
	case o.Metric != mixture.MetricRMS && o.Metric != mixture.MetricEuclidean:
		return fmt.Errorf("Metric %d: %w", int(o.Metric), ErrBadOptions)
	case o.MaxIterations <= 0:
		return fmt.Errorf("MaxIterations %d: %w", o.MaxIterations, ErrBadOptions)
	case !(o.LearningRate > 0) || math.IsInf(o.LearningRate, 0):
		return fmt.Errorf("LearningRate %g: %w", o.LearningRate, ErrBadOptions)
	case !(o.Tolerance >= 0) || math.IsInf(o.Tolerance, 0):
		return fmt.Errorf("Tolerance %g: %w", o.Tolerance, ErrBadOptions)
	case o.CoordMaxIterations <= 0:
		return fmt.Errorf("CoordMaxIterations %d: %w", o.CoordMaxIterations, ErrBadOptions)
	case !(o.PruneThreshold >= 0 && o.PruneThreshold < 1):
		return fmt.Errorf("PruneThreshold %g: %w", o.PruneThreshold, ErrBadOptions)
	}
	if err := validateSteps("CoarseSteps", o.CoarseSteps); err != nil {
		return err
	}

	return validateSteps("FineSteps", o.FineSteps)
}

func validateSteps(name string, steps []float64) error {
	if len(steps) == 0 {
		return fmt.Errorf("%s empty: %w", name, ErrBadOptions)
	}
	for i, s := range steps {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%s[%d] = %g: %w", name, i, s, ErrBadOptions)
		}
	}

	return nil
}

// Result is the outcome of one solve.
type Result struct {
	// Weights are on the simplex, indexed like the sources.
	Weights []float64

	// Distance is the best distance reached, under Options.Metric.
	Distance float64

	// Iterations is the number of (outer) iterations performed.
	Iterations int

	// Converged is false when the iteration cap ended the search.
	Converged bool

	// Resets counts degenerate trials that fell back to uniform weights.
	Resets int

	// Algorithm records which strategy produced the result.
	Algorithm Algorithm
}

// Solver is one admixture strategy.
type Solver interface {
	// Solve fits target as a convex mixture of sources.
	Solve(target []float64, sources [][]float64) (Result, error)

	// Algorithm identifies the strategy.
	Algorithm() Algorithm
}
