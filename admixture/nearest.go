package admixture

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/g25mix/coords"
	"github.com/katalvlaran/g25mix/mixture"
)

// Neighbor is one ranked entry returned by Nearest.
type Neighbor struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}

// Nearest ranks every vector of coll by its distance to target under metric,
// closest first. Ties keep collection order. k ≤ 0 returns all entries;
// otherwise at most k.
//
// Errors:
//   - ErrInvalidInput for a nil or empty collection or an empty target.
//   - ErrDimensionMismatch when coll.Dim() != len(target).
//   - mixture.ErrUnknownMetric for an unknown metric.
//
// Complexity: O(K·D + K log K) for K vectors.
func Nearest(target []float64, coll *coords.Collection, k int, metric mixture.Metric) ([]Neighbor, error) {
	if coll == nil || coll.Len() == 0 {
		return nil, fmt.Errorf("nearest: empty collection: %w", ErrInvalidInput)
	}
	if len(target) == 0 {
		return nil, fmt.Errorf("nearest: empty target: %w", ErrInvalidInput)
	}
	if coll.Dim() != len(target) {
		return nil, fmt.Errorf("nearest: collection has %d coordinates, target has %d: %w",
			coll.Dim(), len(target), ErrDimensionMismatch)
	}

	out := make([]Neighbor, coll.Len())
	for i := range out {
		v := coll.At(i)
		d, err := metric.Distance(target, v.Coords)
		if err != nil {
			return nil, fmt.Errorf("nearest: %s: %w", v.Label, err)
		}
		out[i] = Neighbor{Label: v.Label, Distance: d}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Distance < out[b].Distance })

	if k > 0 && k < len(out) {
		out = out[:k]
	}

	return out, nil
}
