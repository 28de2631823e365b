package coords

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single sheet line; G25 rows are a few hundred bytes.
const maxLineBytes = 1 << 20

// Reasons reported in ParseError.Reason.
const (
	reasonNoCoords  = "missing coordinates"
	reasonNoLabel   = "empty label"
	reasonBadNumber = "invalid number"
	reasonNonFinite = "non-finite number"
)

// Load parses a whole sheet held in memory. See Read.
func Load(text string, opts ...Option) (*Collection, error) {
	return Read(strings.NewReader(text), opts...)
}

// Read parses a G25 coordinate sheet from r.
//
// Implementation:
//   - Stage 1: scan lines; trim; skip blank lines.
//   - Stage 2: split each line on the delimiter into label + coordinates,
//     parse the coordinates as float64 and reject NaN/±Inf.
//   - Stage 3: enforce a single dimensionality D (fixed by the first row).
//   - Stage 4 (plain): Set each row by full label (overwrite keeps position).
//     Stage 4 (aggregated): accumulate per-prefix sums in first-seen order,
//     then divide by the row count once at the end.
//
// Errors:
//   - *ParseError (matches ErrParse) for malformed lines.
//   - ErrDimensionMismatch when rows disagree on D.
//   - ErrEmpty when there are no data lines.
//   - I/O errors from r, returned as-is.
//
// Complexity:
//   - Time O(L·D) for L lines, Space O(K·D) for K output vectors.
func Read(r io.Reader, opts ...Option) (*Collection, error) {
	o := gatherOptions(opts...)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		coll   = NewCollection()
		groups = newAccumulator()
		lineNo int
		rows   int
		dim    int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		// Stage 2: label + coordinates.
		label, vec, err := parseLine(line, lineNo, o.delimiter)
		if err != nil {
			return nil, err
		}

		// Stage 3: shared dimensionality.
		if rows == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			return nil, dimensionError(lineNo, label, len(vec), dim)
		}
		rows++

		// Stage 4.
		if !o.aggregate {
			_ = coll.Set(LabeledVector{Label: label, Coords: vec})
			continue
		}
		key := groupKey(label, o.groupSep)
		if key == "" {
			return nil, &ParseError{Line: lineNo, Label: label, Reason: reasonNoLabel}
		}
		groups.add(key, vec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrEmpty
	}

	if o.aggregate {
		return groups.collection(), nil
	}

	return coll, nil
}

// parseLine splits one trimmed, non-empty line into its label and
// coordinates.
func parseLine(line string, lineNo int, delim string) (string, []float64, error) {
	fields := strings.Split(line, delim)
	label := strings.TrimSpace(fields[0])
	if label == "" {
		return "", nil, &ParseError{Line: lineNo, Reason: reasonNoLabel}
	}
	if len(fields) < 2 {
		return "", nil, &ParseError{Line: lineNo, Label: label, Reason: reasonNoCoords}
	}

	vec := make([]float64, len(fields)-1)
	for i, f := range fields[1:] {
		tok := strings.TrimSpace(f)
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return "", nil, &ParseError{Line: lineNo, Label: label, Token: tok, Reason: reasonBadNumber, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", nil, &ParseError{Line: lineNo, Label: label, Token: tok, Reason: reasonNonFinite}
		}
		vec[i] = v
	}

	return label, vec, nil
}

// groupKey returns the part of label before the first sep (the whole label
// when sep is absent), trimmed.
func groupKey(label, sep string) string {
	if i := strings.Index(label, sep); i >= 0 {
		label = label[:i]
	}

	return strings.TrimSpace(label)
}

// accumulator keeps per-group coordinate sums in first-seen order.
type accumulator struct {
	keys   []string
	sums   map[string][]float64
	counts map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{sums: make(map[string][]float64), counts: make(map[string]int)}
}

func (a *accumulator) add(key string, vec []float64) {
	sum, ok := a.sums[key]
	if !ok {
		sum = make([]float64, len(vec))
		a.sums[key] = sum
		a.keys = append(a.keys, key)
	}
	for j, v := range vec {
		sum[j] += v
	}
	a.counts[key]++
}

// collection divides each sum by its count and emits the groups in
// first-seen order.
func (a *accumulator) collection() *Collection {
	coll := NewCollection()
	for _, k := range a.keys {
		sum := a.sums[k]
		n := float64(a.counts[k])
		for j := range sum {
			sum[j] /= n
		}
		_ = coll.Set(LabeledVector{Label: k, Coords: sum})
	}

	return coll
}
