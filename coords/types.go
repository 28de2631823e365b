package coords

import "fmt"

// LabeledVector pairs a population or group label with its coordinates.
type LabeledVector struct {
	Label  string
	Coords []float64
}

// Dim returns the number of coordinates.
func (v LabeledVector) Dim() int { return len(v.Coords) }

// Clone returns a deep copy.
func (v LabeledVector) Clone() LabeledVector {
	c := make([]float64, len(v.Coords))
	copy(c, v.Coords)

	return LabeledVector{Label: v.Label, Coords: c}
}

// Collection is an insertion-ordered mapping label → LabeledVector with a
// single shared dimensionality. The zero value is not usable; call
// NewCollection. A Collection is not safe for concurrent mutation, but
// concurrent reads are fine once loading is done.
type Collection struct {
	vecs  []LabeledVector
	index map[string]int
	dim   int
}

// NewCollection returns an empty collection whose dimensionality is fixed by
// the first vector added.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Set inserts v, or replaces the coordinates of an existing label in place
// (its position is kept). The first vector fixes the dimensionality.
//
// Errors:
//   - ErrDimensionMismatch when v.Dim() differs from the collection's.
func (c *Collection) Set(v LabeledVector) error {
	if len(c.vecs) == 0 && c.dim == 0 {
		c.dim = v.Dim()
	} else if v.Dim() != c.dim {
		return fmt.Errorf("%q has %d coordinates, want %d: %w", v.Label, v.Dim(), c.dim, ErrDimensionMismatch)
	}
	if i, ok := c.index[v.Label]; ok {
		c.vecs[i] = v
		return nil
	}
	c.index[v.Label] = len(c.vecs)
	c.vecs = append(c.vecs, v)

	return nil
}

// Len returns the number of vectors.
func (c *Collection) Len() int { return len(c.vecs) }

// Dim returns the shared dimensionality (0 when empty).
func (c *Collection) Dim() int { return c.dim }

// Get looks a vector up by label.
func (c *Collection) Get(label string) (LabeledVector, bool) {
	i, ok := c.index[label]
	if !ok {
		return LabeledVector{}, false
	}

	return c.vecs[i], true
}

// At returns the i-th vector in insertion order. It panics when i is out of
// range, like slice indexing.
func (c *Collection) At(i int) LabeledVector { return c.vecs[i] }

// Labels returns the labels in insertion order.
func (c *Collection) Labels() []string {
	out := make([]string, len(c.vecs))
	for i, v := range c.vecs {
		out[i] = v.Label
	}

	return out
}

// Vectors returns the vectors in insertion order. The slice is a copy; the
// coordinate slices are shared.
func (c *Collection) Vectors() []LabeledVector {
	out := make([]LabeledVector, len(c.vecs))
	copy(out, c.vecs)

	return out
}

// Coords returns the coordinate slices in insertion order, the shape the
// admixture solvers consume. Coordinate slices are shared, not copied.
func (c *Collection) Coords() [][]float64 {
	out := make([][]float64, len(c.vecs))
	for i, v := range c.vecs {
		out[i] = v.Coords
	}

	return out
}

// Subset returns a new collection holding only the given labels, in the
// order requested.
//
// Errors:
//   - an error naming the first unknown label.
func (c *Collection) Subset(labels ...string) (*Collection, error) {
	out := NewCollection()
	for _, l := range labels {
		v, ok := c.Get(l)
		if !ok {
			return nil, fmt.Errorf("coords: unknown label %q", l)
		}
		// Dimensions already agree inside c.
		_ = out.Set(v)
	}

	return out, nil
}
