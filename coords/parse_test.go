package coords_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/katalvlaran/g25mix/coords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = `
Yamnaya:I0357,0.10,0.20,0.30
Yamnaya:I0429,0.30,0.40,0.50

CHG:KK1,0.50,0.00,-0.10
`

// TestLoad_Plain keeps one vector per line, in order.
func TestLoad_Plain(t *testing.T) {
	coll, err := coords.Load(sheet)
	require.NoError(t, err)

	assert.Equal(t, 3, coll.Len())
	assert.Equal(t, 3, coll.Dim())
	assert.Equal(t, []string{"Yamnaya:I0357", "Yamnaya:I0429", "CHG:KK1"}, coll.Labels())

	v, ok := coll.Get("CHG:KK1")
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 0, -0.1}, v.Coords)
}

// TestLoad_Aggregate averages rows sharing a prefix.
func TestLoad_Aggregate(t *testing.T) {
	coll, err := coords.Load(sheet, coords.WithAggregate())
	require.NoError(t, err)

	assert.Equal(t, []string{"Yamnaya", "CHG"}, coll.Labels())
	y, ok := coll.Get("Yamnaya")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.2, 0.3, 0.4}, y.Coords, 1e-12)

	c, _ := coll.Get("CHG")
	assert.Equal(t, []float64{0.5, 0, -0.1}, c.Coords)
}

// TestLoad_AggregateIdenticalRows: averaging a row with itself returns it
// unchanged, bit for bit.
func TestLoad_AggregateIdenticalRows(t *testing.T) {
	coll, err := coords.Load("P:a,0.1,0.2\nP:b,0.1,0.2", coords.WithAggregate())
	require.NoError(t, err)
	require.Equal(t, 1, coll.Len())
	p, ok := coll.Get("P")
	require.True(t, ok)
	assert.Equal(t, []float64{0.1, 0.2}, p.Coords)

	row := "-0.0123456789,0.3333333333,1e-9,-0.07"
	coll, err = coords.Load("Q:x,"+row+"\nQ:y,"+row, coords.WithAggregate())
	require.NoError(t, err)
	q, _ := coll.Get("Q")
	assert.Equal(t, []float64{-0.0123456789, 0.3333333333, 1e-9, -0.07}, q.Coords)
}

// TestLoad_AggregateWithoutSeparator uses the whole label as the group key.
func TestLoad_AggregateWithoutSeparator(t *testing.T) {
	coll, err := coords.Load("A,1,2\nA,3,4\nB,5,6", coords.WithAggregate())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, coll.Labels())
	a, _ := coll.Get("A")
	assert.Equal(t, []float64{2, 3}, a.Coords)
}

// TestLoad_AggregateSplitsOnFirstSeparator only splits once.
func TestLoad_AggregateSplitsOnFirstSeparator(t *testing.T) {
	coll, err := coords.Load("Pop:a:b,1\nPop:c,3", coords.WithAggregate())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pop"}, coll.Labels())
	p, _ := coll.Get("Pop")
	assert.Equal(t, []float64{2}, p.Coords)
}

// TestLoad_DuplicateOverwritesInPlace keeps the first position.
func TestLoad_DuplicateOverwritesInPlace(t *testing.T) {
	coll, err := coords.Load("A,1\nB,2\nA,9")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, coll.Labels())
	a, _ := coll.Get("A")
	assert.Equal(t, []float64{9}, a.Coords)
}

// TestLoad_CRLFAndPadding tolerates Windows line endings and spaces.
func TestLoad_CRLFAndPadding(t *testing.T) {
	coll, err := coords.Load("  A , 1 , 2 \r\n\r\nB,3,4\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, coll.Labels())
	a, _ := coll.Get("A")
	assert.Equal(t, []float64{1, 2}, a.Coords)
}

// TestLoad_Errors covers every rejection path.
func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		target error
		line   int
	}{
		{"bad number", "A,1,2\nB,1,x", coords.ErrParse, 2},
		{"label only", "A", coords.ErrParse, 1},
		{"empty label", ",1,2", coords.ErrParse, 1},
		{"empty token", "A,1,", coords.ErrParse, 1},
		{"nan", "A,NaN", coords.ErrParse, 1},
		{"inf", "A,1\nB,+Inf", coords.ErrParse, 2},
		{"ragged", "A,1,2\nB,1", coords.ErrDimensionMismatch, 0},
		{"empty", "\n  \n", coords.ErrEmpty, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coll, err := coords.Load(tc.text)
			require.Error(t, err)
			assert.Nil(t, coll)
			assert.ErrorIs(t, err, tc.target)

			if tc.line > 0 {
				var pe *coords.ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, tc.line, pe.Line)
			}
		})
	}
}

// TestParseError_UnwrapsCause exposes the strconv failure.
func TestParseError_UnwrapsCause(t *testing.T) {
	_, err := coords.Load("A,1.2.3")
	var ne *strconv.NumError
	require.True(t, errors.As(err, &ne))
	assert.Contains(t, err.Error(), `token "1.2.3"`)
	assert.Contains(t, err.Error(), "line 1 (A)")
}

// TestLoad_AggregateEmptyPrefix rejects ":sample" labels.
func TestLoad_AggregateEmptyPrefix(t *testing.T) {
	_, err := coords.Load(":x,1", coords.WithAggregate())
	assert.ErrorIs(t, err, coords.ErrParse)

	// Plain mode keeps the label verbatim.
	coll, err := coords.Load(":x,1")
	require.NoError(t, err)
	assert.Equal(t, []string{":x"}, coll.Labels())
}

// TestLoad_CustomSeparators exercises delimiter and group separator options.
func TestLoad_CustomSeparators(t *testing.T) {
	text := "Pop/a;1;2\nPop/b;3;4"
	coll, err := coords.Load(text, coords.WithDelimiter(";"), coords.WithGroupSeparator("/"), coords.WithAggregate())
	require.NoError(t, err)
	p, ok := coll.Get("Pop")
	require.True(t, ok)
	assert.Equal(t, []float64{2, 3}, p.Coords)
}

// TestOptions_Panics verifies programmer-error panics.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { coords.WithDelimiter("") })
	assert.Panics(t, func() { coords.WithGroupSeparator("") })
	assert.Panics(t, func() {
		_, _ = coords.Load("A,1", coords.WithAggregate(), coords.WithGroupSeparator(","))
	})
}

// TestRead_LongLine accepts lines past bufio's default token size.
func TestRead_LongLine(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Wide")
	for i := 0; i < 20000; i++ {
		sb.WriteString(",0.123456")
	}
	coll, err := coords.Read(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, 20000, coll.Dim())
}
