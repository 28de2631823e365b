package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/g25mix/admixture"
	"github.com/katalvlaran/g25mix/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sourcesSheet = "Steppe:s1,1,0,0\nSteppe:s2,1,0,0\nFarmer:f1,0,1,0\nHG:h1,0,0,1\n"
	targetsSheet = "Mix,0.6,0.4,0\nPure,0,0,1\n"
)

type fixture struct {
	dir     string
	sources string
	targets string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("G25MIX_LOG_LEVEL", "error")
	dir := t.TempDir()
	f := fixture{dir: dir, sources: filepath.Join(dir, "sources.csv"), targets: filepath.Join(dir, "targets.csv")}
	require.NoError(t, os.WriteFile(f.sources, []byte(sourcesSheet), 0o600))
	require.NoError(t, os.WriteFile(f.targets, []byte(targetsSheet), 0o600))

	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

// TestRoot_Structure lists the subcommands and global flags.
func TestRoot_Structure(t *testing.T) {
	cmd := cli.NewRootCommand()
	assert.Equal(t, "g25mix", cmd.Use)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"solve", "nearest", "inspect"} {
		assert.True(t, names[want], want)
	}
	for _, flag := range []string{"config", "log-level", "output", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

// TestSolve_TextAggregated models one target against averaged sources.
func TestSolve_TextAggregated(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "solve", "--targets", f.targets, "--sources", f.sources, "--target", "Mix", "--aggregate")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Target: Mix\nResults:\nGenetic Distance: 0.00"), out)
	steppe, farmer := strings.Index(out, "Steppe: "), strings.Index(out, "Farmer: ")
	require.Positive(t, steppe)
	require.Positive(t, farmer)
	assert.Less(t, steppe, farmer, "heavier component first")
}

// TestSolve_JSONAll emits one report per target.
func TestSolve_JSONAll(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "solve", "-o", "json", "--targets", f.targets, "--sources", f.sources, "--all", "--aggregate", "--algorithm", "gradient")
	require.NoError(t, err)

	var got struct {
		Reports []struct {
			Target     string `json:"target"`
			Algorithm  string `json:"algorithm"`
			Components []struct {
				Label  string  `json:"label"`
				Weight float64 `json:"weight"`
			} `json:"components"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Reports, 2)
	assert.Equal(t, "Mix", got.Reports[0].Target)
	assert.Equal(t, "Pure", got.Reports[1].Target)
	assert.Equal(t, "gradient", got.Reports[1].Algorithm)
	assert.Equal(t, "HG", got.Reports[1].Components[2].Label)
	assert.InDelta(t, 1.0, got.Reports[1].Components[2].Weight, 0.05)
}

// TestSolve_Table prefixes each row with the target.
func TestSolve_Table(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "solve", "-o", "table", "--targets", f.targets, "--sources", f.sources, "--target", "Pure", "--aggregate")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], "TARGET"))
	assert.True(t, strings.HasPrefix(lines[2], "Pure"))
	assert.Contains(t, lines[2], "HG")
	assert.Contains(t, lines[len(lines)-1], "(distance)")
}

// TestSolve_RequiresTargetSelection on multi-target sheets.
func TestSolve_RequiresTargetSelection(t *testing.T) {
	f := newFixture(t)
	_, err := run(t, "solve", "--targets", f.targets, "--sources", f.sources)
	assert.ErrorIs(t, err, cli.ErrNoTargetSelected)
}

// TestSolve_DimensionMismatchFailsJob reports the failed target.
func TestSolve_DimensionMismatchFailsJob(t *testing.T) {
	f := newFixture(t)
	wide := filepath.Join(f.dir, "wide.csv")
	require.NoError(t, os.WriteFile(wide, []byte("W,1,2,3,4\n"), 0o600))

	_, err := run(t, "solve", "--targets", wide, "--sources", f.sources)
	assert.ErrorIs(t, err, admixture.ErrDimensionMismatch)
}

// TestSolve_MetricsTextfile writes the Prometheus file.
func TestSolve_MetricsTextfile(t *testing.T) {
	f := newFixture(t)
	prom := filepath.Join(f.dir, "g25mix.prom")
	_, err := run(t, "solve", "--targets", f.targets, "--sources", f.sources, "--all", "--metrics-textfile", prom)
	require.NoError(t, err)

	body, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(body), `g25mix_solves_total{algorithm="coordinate",status="ok"} 2`)
}

// TestSolve_BadFlags surfaces parse errors.
func TestSolve_BadFlags(t *testing.T) {
	f := newFixture(t)
	_, err := run(t, "solve", "--targets", f.targets, "--sources", f.sources, "--all", "--algorithm", "annealing")
	assert.Error(t, err)

	_, err = run(t, "-o", "yaml", "inspect", f.sources)
	assert.Error(t, err)

	_, err = run(t, "solve", "--sources", f.sources)
	assert.Error(t, err, "missing required --targets")
}

// TestNearest ranks aggregated sources.
func TestNearest(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "nearest", "--targets", f.targets, "--sources", f.sources, "--target", "Pure", "-k", "2", "--aggregate")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Distance to: Pure", lines[0])
	assert.Equal(t, "0.00000000 HG", lines[1])
}

// TestInspect lists labels in order.
func TestInspect(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "inspect", f.sources, "--aggregate")
	require.NoError(t, err)
	assert.Contains(t, out, "3 vectors, 3 dimensions\nSteppe\nFarmer\nHG\n")

	out, err = run(t, "-o", "json", "inspect", f.sources)
	require.NoError(t, err)
	var got struct {
		Dim    int      `json:"dim"`
		Labels []string `json:"labels"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Dim)
	assert.Len(t, got.Labels, 4)
}

// TestInspectStats appends per-dimension summaries.
func TestInspectStats(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "-o", "json", "inspect", f.sources, "--stats")
	require.NoError(t, err)

	var got struct {
		Means   []float64 `json:"means"`
		StdDevs []float64 `json:"std_devs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.25}, got.Means, 1e-12)
	require.Len(t, got.StdDevs, 3)
	assert.InDelta(t, 0.5, got.StdDevs[2], 1e-12)

	out, err = run(t, "inspect", f.sources, "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "PC1 0.500000 0.577350\n")
}

// TestConfigFile drives defaults from YAML.
func TestConfigFile(t *testing.T) {
	f := newFixture(t)
	cfgPath := filepath.Join(f.dir, "g25mix.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  aggregate_sources: true\nsolver:\n  algorithm: gradient\n"), 0o600))

	out, err := run(t, "-c", cfgPath, "-o", "json", "solve", "--targets", f.targets, "--sources", f.sources, "--target", "Mix")
	require.NoError(t, err)
	assert.Contains(t, out, `"algorithm": "gradient"`)
	assert.Contains(t, out, `"label": "Steppe"`)
}

// TestRenderTable aligns columns.
func TestRenderTable(t *testing.T) {
	got := cli.RenderTable([]string{"A", "BB"}, [][]string{{"long", "x"}, {"s"}})
	want := "A     BB\n----  --\nlong  x\ns     \n"
	assert.Equal(t, want, got)
	assert.Empty(t, cli.RenderTable(nil, nil))
}
