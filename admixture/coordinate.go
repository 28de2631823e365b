package admixture

import (
	"fmt"

	"github.com/katalvlaran/g25mix/simplex"
)

// CoordinateSolver implements multi-scale cyclic coordinate descent.
type CoordinateSolver struct {
	opts Options
}

var _ Solver = (*CoordinateSolver)(nil)

// NewCoordinate returns a coordinate-descent solver. The step slices are
// copied so later edits to opts do not leak into the solver.
//
// Errors:
//   - ErrBadOptions (see Options.Validate).
func NewCoordinate(opts Options) (*CoordinateSolver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.Algo = CoordinateDescent
	opts.CoarseSteps = append([]float64(nil), opts.CoarseSteps...)
	opts.FineSteps = append([]float64(nil), opts.FineSteps...)

	return &CoordinateSolver{opts: opts}, nil
}

// Algorithm returns CoordinateDescent.
func (c *CoordinateSolver) Algorithm() Algorithm { return CoordinateDescent }

// Solve fits target by greedy coordinate search.
//
// Implementation:
//   - Stage 1: validate inputs; w = uniform; best = distance(w).
//   - Stage 2: outer loop up to CoordMaxIterations:
//     a) coarse pass over every coordinate;
//     b) fine pass only if the coarse pass improved nothing;
//     c) stop (converged) when neither pass improved.
//   - Stage 3: prune weights below PruneThreshold and rescale.
//
// The returned Distance is the best reached during the search, i.e. before
// pruning; pruned mass is below the threshold by construction. When every
// weight is below the threshold the result collapses onto the largest one
// and Distance is that vertex's distance.
//
// Complexity:
//   - Time O(iters · N · |steps| · N·D), Space O(N + D).
func (c *CoordinateSolver) Solve(target []float64, sources [][]float64) (Result, error) {
	// Stage 1: preconditions and start point.
	panel, err := prepare(target, sources)
	if err != nil {
		return Result{}, fmt.Errorf("coordinate: %w", err)
	}
	st := &coordState{
		ev:    newEvaluator(panel, target, c.opts.Metric),
		w:     simplex.Uniform(panel.Sources()),
		trial: make([]float64, panel.Sources()),
	}
	st.best = st.ev.distance(st.w)

	res := Result{Algorithm: CoordinateDescent}

	// Stage 2: search.
	var iter int
	for iter = 1; iter <= c.opts.CoordMaxIterations; iter++ {
		improved := st.pass(c.opts.CoarseSteps)
		if !improved {
			improved = st.pass(c.opts.FineSteps)
		}
		if c.opts.OnIteration != nil {
			c.opts.OnIteration(iter, st.best)
		}
		if !improved {
			res.Converged = true
			break
		}
	}
	if iter > c.opts.CoordMaxIterations {
		iter = c.opts.CoordMaxIterations
	}

	// Stage 3: prune noise. A collapse onto one vertex changes the fit, so
	// the returned distance is rescored.
	res.Distance = st.best
	if simplex.Prune(st.w, c.opts.PruneThreshold) {
		res.Distance = st.ev.distance(st.w)
	}

	res.Weights = st.w
	res.Iterations = iter
	res.Resets = st.resets

	return res, nil
}

// coordState is the mutable state of one coordinate-descent solve.
type coordState struct {
	ev     *evaluator
	w      []float64 // accepted weights
	trial  []float64 // candidate under evaluation
	best   float64   // distance of w
	resets int
}

// pass visits every coordinate once, trying steps in order and accepting the
// first trial that strictly improves the best distance. Trials are built on a
// copy, so a coordinate with no improving step leaves w untouched.
func (s *coordState) pass(steps []float64) (improved bool) {
	for i := range s.w {
		for _, step := range steps {
			copy(s.trial, s.w)
			s.trial[i] += step
			if simplex.ClipRescale(s.trial) {
				s.resets++
			}
			if d := s.ev.distance(s.trial); d < s.best {
				s.best = d
				s.w, s.trial = s.trial, s.w
				improved = true
				break
			}
		}
	}

	return improved
}
