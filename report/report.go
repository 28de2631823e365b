package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/g25mix/admixture"
)

// ErrLabelMismatch indicates a label count different from the weight count.
var ErrLabelMismatch = errors.New("report: label count does not match weights")

// DefaultThreshold hides components below 0.1% in Text and TableRows.
const DefaultThreshold = 0.001

// Component is one source's share of the target.
type Component struct {
	Label   string  `json:"label"`
	Weight  float64 `json:"weight"`
	Percent float64 `json:"percent"`
}

// Report pairs solver output with source labels.
type Report struct {
	Target     string      `json:"target,omitempty"`
	Algorithm  string      `json:"algorithm"`
	Distance   float64     `json:"distance"`
	Iterations int         `json:"iterations"`
	Converged  bool        `json:"converged"`
	Components []Component `json:"components"`

	threshold float64
}

// New builds a report with components in source order.
//
// Errors:
//   - ErrLabelMismatch when len(labels) != len(res.Weights).
func New(res admixture.Result, labels []string) (*Report, error) {
	if len(labels) != len(res.Weights) {
		return nil, fmt.Errorf("%d labels, %d weights: %w", len(labels), len(res.Weights), ErrLabelMismatch)
	}
	r := &Report{
		Algorithm:  res.Algorithm.String(),
		Distance:   res.Distance,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Components: make([]Component, len(labels)),
		threshold:  DefaultThreshold,
	}
	for i, l := range labels {
		r.Components[i] = Component{Label: l, Weight: res.Weights[i], Percent: res.Weights[i] * 100}
	}

	return r, nil
}

// WithTarget names the modeled target (shown by Text and in JSON).
func (r *Report) WithTarget(label string) *Report {
	r.Target = label
	return r
}

// WithThreshold sets the visibility cut used by Text and TableRows.
func (r *Report) WithThreshold(t float64) *Report {
	r.threshold = t
	return r
}

// Significant returns components with Weight strictly above threshold,
// heaviest first; equal weights keep source order. A threshold of 0 lists
// every non-zero component.
func (r *Report) Significant(threshold float64) []Component {
	out := make([]Component, 0, len(r.Components))
	for _, c := range r.Components {
		if c.Weight > threshold {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })

	return out
}

// Text renders the plain-text block:
//
//	Results:
//	Genetic Distance: 0.0123
//
//	Yamnaya: 55.20%
//	...
func (r *Report) Text() string {
	var sb strings.Builder
	if r.Target != "" {
		fmt.Fprintf(&sb, "Target: %s\n", r.Target)
	}
	sb.WriteString("Results:\n")
	fmt.Fprintf(&sb, "Genetic Distance: %.4f\n\n", r.Distance)
	for _, c := range r.Significant(r.threshold) {
		fmt.Fprintf(&sb, "%s: %.2f%%\n", c.Label, c.Percent)
	}

	return sb.String()
}

// TableHeaders returns the column names matching TableRows.
func (r *Report) TableHeaders() []string { return []string{"SOURCE", "PERCENT"} }

// TableRows returns the significant components as string cells plus a final
// distance row.
func (r *Report) TableRows() [][]string {
	sig := r.Significant(r.threshold)
	rows := make([][]string, 0, len(sig)+1)
	for _, c := range sig {
		rows = append(rows, []string{c.Label, fmt.Sprintf("%.2f%%", c.Percent)})
	}
	rows = append(rows, []string{"(distance)", fmt.Sprintf("%.4f", r.Distance)})

	return rows
}
