package admixture

import (
	"fmt"
	"math"

	"github.com/katalvlaran/g25mix/simplex"
)

// GradientSolver implements projected gradient descent.
type GradientSolver struct {
	opts Options
}

var _ Solver = (*GradientSolver)(nil)

// NewGradient returns a projected-gradient solver.
//
// Errors:
//   - ErrBadOptions (see Options.Validate).
func NewGradient(opts Options) (*GradientSolver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.Algo = GradientProjection

	return &GradientSolver{opts: opts}, nil
}

// Algorithm returns GradientProjection.
func (g *GradientSolver) Algorithm() Algorithm { return GradientProjection }

// Solve fits target by projected gradient descent.
//
// Implementation:
//   - Stage 1: validate inputs, build the panel, start from uniform weights.
//   - Stage 2: per iteration
//     a) d = distance(S·w, t); keep (w, d) if d beats the best so far;
//     b) g = 2·Sᵀ(S·w − t) (gradient of the squared error);
//     c) w' = Π(w − η·g), Π being the simplex projection;
//     d) stop when ‖w' − w‖₂ < Tolerance.
//   - Stage 3: score the final iterate too and return the best-so-far pair.
//
// Complexity:
//   - Time O(MaxIterations · (N·D + N log N)), Space O(N + D).
func (g *GradientSolver) Solve(target []float64, sources [][]float64) (Result, error) {
	// Stage 1: preconditions.
	panel, err := prepare(target, sources)
	if err != nil {
		return Result{}, fmt.Errorf("gradient: %w", err)
	}

	var (
		n       = panel.Sources()
		ev      = newEvaluator(panel, target, g.opts.Metric)
		w       = simplex.Uniform(n)
		next    = make([]float64, n)
		scratch = make([]float64, n)
		best    = make([]float64, n)
		res     = Result{Distance: math.Inf(1), Algorithm: GradientProjection}
		eta     = g.opts.LearningRate
		iter    int
	)

	// Stage 2: descent.
	for iter = 1; iter <= g.opts.MaxIterations; iter++ {
		// a) evaluate (leaves S·w in the workspace for the gradient).
		if d := ev.distance(w); d < res.Distance {
			res.Distance = d
			copy(best, w)
		}
		if g.opts.OnIteration != nil {
			g.opts.OnIteration(iter, res.Distance)
		}

		// b) gradient.
		if err = panel.Gradient(target, ev.ws); err != nil {
			return Result{}, fmt.Errorf("gradient: %w", err)
		}

		// c) step + projection.
		for i := range next {
			next[i] = w[i] - eta*ev.ws.Grad[i]
		}
		simplex.ProjectInto(next, next, scratch)

		// d) convergence on the weight change.
		var delta float64
		for i := range next {
			diff := next[i] - w[i]
			delta += diff * diff
		}
		w, next = next, w
		if math.Sqrt(delta) < g.opts.Tolerance {
			res.Converged = true
			break
		}
	}
	if iter > g.opts.MaxIterations {
		iter = g.opts.MaxIterations
	}

	// Stage 3: the last projected iterate has not been scored yet.
	if d := ev.distance(w); d < res.Distance {
		res.Distance = d
		copy(best, w)
	}
	res.Weights = best
	res.Iterations = iter

	return res, nil
}
