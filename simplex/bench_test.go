package simplex_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/g25mix/simplex"
)

// benchmarkProject runs ProjectInto on a random vector of length n.
func benchmarkProject(b *testing.B, n int) {
	rng := rand.New(rand.NewSource(1))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	dst := make([]float64, n)
	scratch := make([]float64, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		simplex.ProjectInto(dst, v, scratch)
	}
}

// BenchmarkProject_16 benchmarks a typical source panel size.
func BenchmarkProject_16(b *testing.B) { benchmarkProject(b, 16) }

// BenchmarkProject_256 benchmarks a wide panel.
func BenchmarkProject_256(b *testing.B) { benchmarkProject(b, 256) }
