package datafile_test

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/g25mix/coords"
	"github.com/katalvlaran/g25mix/internal/datafile"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = "Pop:a,0.1,0.2\nPop:b,0.3,0.4\nOther:x,0,1\n"

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := io.WriteString(w, s)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func zstded(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = io.WriteString(w, s)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func write(t *testing.T, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	return path
}

// TestSniff recognizes each container.
func TestSniff(t *testing.T) {
	cases := map[datafile.Compression][]byte{
		datafile.None: []byte(sheet),
		datafile.Gzip: gzipped(t, sheet),
		datafile.Zstd: zstded(t, sheet),
	}
	for want, body := range cases {
		assert.Equal(t, want, datafile.Sniff(bufio.NewReader(bytes.NewReader(body))), want.String())
	}
	assert.Equal(t, datafile.None, datafile.Sniff(bufio.NewReader(strings.NewReader(""))))
}

// TestOpen_RoundTrip reads the same sheet through every container; the
// extension is deliberately wrong for the compressed files.
func TestOpen_RoundTrip(t *testing.T) {
	paths := []string{
		write(t, "plain.txt", []byte(sheet)),
		write(t, "g.txt", gzipped(t, sheet)),
		write(t, "z.txt", zstded(t, sheet)),
	}
	for _, p := range paths {
		rc, err := datafile.Open(p)
		require.NoError(t, err, p)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, sheet, string(got), p)
	}
}

// TestLoadCollection parses through the decoder.
func TestLoadCollection(t *testing.T) {
	p := write(t, "sources.csv.zst", zstded(t, sheet))
	coll, err := datafile.LoadCollection(p, coords.WithAggregate())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pop", "Other"}, coll.Labels())
	pop, _ := coll.Get("Pop")
	assert.InDeltaSlice(t, []float64{0.2, 0.3}, pop.Coords, 1e-12)
}

// TestLoadCollection_Errors wraps file and parse failures with the path.
func TestLoadCollection_Errors(t *testing.T) {
	_, err := datafile.LoadCollection(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := write(t, "bad.csv.gz", gzipped(t, "A,1\nB,x\n"))
	_, err = datafile.LoadCollection(p)
	assert.ErrorIs(t, err, coords.ErrParse)
	assert.Contains(t, err.Error(), "bad.csv.gz")
}

// TestNewReader_CorruptGzip reports a decoder error.
func TestNewReader_CorruptGzip(t *testing.T) {
	_, kind, err := datafile.NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	assert.Equal(t, datafile.Gzip, kind)
	assert.Error(t, err)
}
