package mixture

import (
	"fmt"
	"math"

	"github.com/katalvlaran/g25mix/matrix"
)

// Modeled returns Σᵢ weights[i]·sources[i].
//
// Errors:
//   - ErrEmptyVector if sources is empty or the first source is empty.
//   - ErrDimensionMismatch if len(weights) != len(sources) or sources differ in length.
//
// Complexity: O(N·D).
func Modeled(weights []float64, sources [][]float64) ([]float64, error) {
	if len(sources) == 0 || len(sources[0]) == 0 {
		return nil, ErrEmptyVector
	}
	if len(weights) != len(sources) {
		return nil, fmt.Errorf("%d weights for %d sources: %w", len(weights), len(sources), ErrDimensionMismatch)
	}
	d := len(sources[0])
	out := make([]float64, d)
	for i, src := range sources {
		if len(src) != d {
			return nil, fmt.Errorf("source %d has dimension %d, want %d: %w", i, len(src), d, ErrDimensionMismatch)
		}
		if weights[i] == 0 {
			continue
		}
		for j, x := range src {
			out[j] += weights[i] * x
		}
	}

	return out, nil
}

// Panel is an immutable D×N source panel: column i holds source i.
// A Panel is safe for concurrent reads; per-solve scratch lives in Workspace.
type Panel struct {
	s *matrix.Dense
	d int
	n int
}

// NewPanel validates sources and packs them into a column-major panel.
//
// Errors:
//   - ErrEmptyVector for no sources or zero-dimension sources.
//   - ErrDimensionMismatch when source lengths differ.
func NewPanel(sources [][]float64) (*Panel, error) {
	if len(sources) == 0 || len(sources[0]) == 0 {
		return nil, ErrEmptyVector
	}
	d := len(sources[0])
	for i, src := range sources {
		if len(src) != d {
			return nil, fmt.Errorf("source %d has dimension %d, want %d: %w", i, len(src), d, ErrDimensionMismatch)
		}
	}
	s, err := matrix.NewFromColumns(sources)
	if err != nil {
		return nil, fmt.Errorf("mixture: build panel: %w", err)
	}

	return &Panel{s: s, d: d, n: len(sources)}, nil
}

// Dim returns D, the coordinate dimensionality.
func (p *Panel) Dim() int { return p.d }

// Sources returns N, the number of sources.
func (p *Panel) Sources() int { return p.n }

// Matrix exposes the underlying D×N matrix (read-only by convention).
func (p *Panel) Matrix() matrix.Matrix { return p.s }

// Workspace holds the per-solve buffers used by Panel evaluations so that the
// iteration loop performs no allocations. It is owned by a single goroutine.
type Workspace struct {
	Model    []float64 // D: S·w
	Residual []float64 // D: S·w − t
	Grad     []float64 // N: 2·Sᵀ(S·w − t)
}

// NewWorkspace allocates buffers sized for p.
func (p *Panel) NewWorkspace() *Workspace {
	return &Workspace{
		Model:    make([]float64, p.d),
		Residual: make([]float64, p.d),
		Grad:     make([]float64, p.n),
	}
}

// Model writes S·w into ws.Model.
func (p *Panel) Model(w []float64, ws *Workspace) error {
	if err := matrix.MatVecInto(p.s, w, ws.Model); err != nil {
		return fmt.Errorf("mixture: model: %w", ErrDimensionMismatch)
	}

	return nil
}

// Distance evaluates S·w against target under metric m, leaving S·w in
// ws.Model. Length checks are the caller's responsibility (see NewPanel and
// the solver preconditions); a mismatch yields ErrDimensionMismatch.
func (p *Panel) Distance(w, target []float64, m Metric, ws *Workspace) (float64, error) {
	if len(target) != p.d {
		return 0, ErrDimensionMismatch
	}
	if err := p.Model(w, ws); err != nil {
		return 0, err
	}
	ss := rawSumSquares(ws.Model, target)
	switch m {
	case MetricRMS:
		return math.Sqrt(ss / float64(p.d)), nil
	case MetricEuclidean:
		return math.Sqrt(ss), nil
	default:
		return 0, ErrUnknownMetric
	}
}

// Gradient writes ∂/∂w ‖S·w − t‖² = 2·Sᵀ(S·w − t) into ws.Grad. It expects
// ws.Model to already hold S·w for the same w (as left by Distance).
func (p *Panel) Gradient(target []float64, ws *Workspace) error {
	if len(target) != p.d {
		return ErrDimensionMismatch
	}
	for j := range ws.Residual {
		ws.Residual[j] = ws.Model[j] - target[j]
	}
	if err := matrix.MatTVecInto(p.s, ws.Residual, ws.Grad); err != nil {
		return fmt.Errorf("mixture: gradient: %w", ErrDimensionMismatch)
	}
	for i := range ws.Grad {
		ws.Grad[i] *= 2
	}

	return nil
}
