package admixture

import (
	"fmt"

	"github.com/katalvlaran/g25mix/matrix"
	"github.com/katalvlaran/g25mix/mixture"
)

// New returns the Solver selected by opts.Algo.
//
// Errors:
//   - ErrBadOptions (see Options.Validate).
//   - ErrUnsupportedAlgorithm for an unknown opts.Algo.
func New(opts Options) (Solver, error) {
	switch opts.Algo {
	case GradientProjection:
		return NewGradient(opts)
	case CoordinateDescent:
		return NewCoordinate(opts)
	default:
		return nil, fmt.Errorf("%v: %w", opts.Algo, ErrUnsupportedAlgorithm)
	}
}

// Solve validates opts, routes to the chosen strategy and returns its result.
//
// Contracts:
//   - len(sources) ≥ 1, len(target) ≥ 1, every source has len(target) entries.
//   - All coordinates are finite.
//
// Errors:
//   - ErrBadOptions, ErrUnsupportedAlgorithm, ErrInvalidInput,
//     ErrDimensionMismatch. All are raised before any iteration.
func Solve(target []float64, sources [][]float64, opts Options) (Result, error) {
	s, err := New(opts)
	if err != nil {
		return Result{}, err
	}

	return s.Solve(target, sources)
}

// prepare checks structural preconditions and packs sources into a Panel.
//
// Implementation:
//   - Stage 1: non-empty target and sources.
//   - Stage 2: every source length equals the target length.
//   - Stage 3: finite coordinates (target here, sources inside NewPanel).
func prepare(target []float64, sources [][]float64) (*mixture.Panel, error) {
	// Stage 1.
	if len(target) == 0 {
		return nil, fmt.Errorf("empty target: %w", ErrInvalidInput)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources: %w", ErrInvalidInput)
	}

	// Stage 2.
	for i, src := range sources {
		if len(src) != len(target) {
			return nil, fmt.Errorf("source %d has %d coordinates, target has %d: %w",
				i, len(src), len(target), ErrDimensionMismatch)
		}
	}

	// Stage 3.
	if err := matrix.ValidateFinite(target); err != nil {
		return nil, fmt.Errorf("target: %v: %w", err, ErrInvalidInput)
	}
	p, err := mixture.NewPanel(sources)
	if err != nil {
		return nil, fmt.Errorf("sources: %v: %w", err, ErrInvalidInput)
	}

	return p, nil
}

// evaluator bundles the per-solve state shared by both strategies.
type evaluator struct {
	panel  *mixture.Panel
	target []float64
	metric mixture.Metric
	ws     *mixture.Workspace
}

func newEvaluator(p *mixture.Panel, target []float64, m mixture.Metric) *evaluator {
	return &evaluator{panel: p, target: target, metric: m, ws: p.NewWorkspace()}
}

// distance evaluates w. Shapes were validated by prepare, so an error here
// is an internal invariant violation.
func (e *evaluator) distance(w []float64) float64 {
	d, err := e.panel.Distance(w, e.target, e.metric, e.ws)
	if err != nil {
		panic(fmt.Sprintf("admixture: distance on validated panel: %v", err))
	}

	return d
}
