package config

import (
	"runtime"

	"github.com/katalvlaran/g25mix/admixture"
	"github.com/katalvlaran/g25mix/coords"
	"github.com/katalvlaran/g25mix/report"
)

const (
	DefaultAlgorithm = "coordinate"
	DefaultMetric    = "rms"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// DefaultWorkers is one solve per CPU.
func DefaultWorkers() int { return runtime.NumCPU() }

// NewDefaultConfig returns a fully populated, valid Config.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Solver.PruneThreshold = admixture.DefaultPruneThreshold
	cfg.Solver.ReportThreshold = report.DefaultThreshold
	cfg.Log.OutputPaths = []string{"stderr"}

	return cfg
}

// ApplyDefaults fills zero-value fields; explicit values win.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// solver
	if cfg.Solver.Algorithm == "" {
		cfg.Solver.Algorithm = DefaultAlgorithm
	}
	if cfg.Solver.Metric == "" {
		cfg.Solver.Metric = DefaultMetric
	}
	if cfg.Solver.MaxIterations == 0 {
		cfg.Solver.MaxIterations = admixture.DefaultMaxIterations
	}
	if cfg.Solver.LearningRate == 0 {
		cfg.Solver.LearningRate = admixture.DefaultLearningRate
	}
	if cfg.Solver.Tolerance == 0 {
		cfg.Solver.Tolerance = admixture.DefaultTolerance
	}
	if cfg.Solver.CoordMaxIterations == 0 {
		cfg.Solver.CoordMaxIterations = admixture.DefaultCoordMaxIterations
	}
	if len(cfg.Solver.CoarseSteps) == 0 {
		cfg.Solver.CoarseSteps = admixture.DefaultCoarseSteps()
	}
	if len(cfg.Solver.FineSteps) == 0 {
		cfg.Solver.FineSteps = admixture.DefaultFineSteps()
	}
	// PruneThreshold and ReportThreshold: 0 is a meaningful explicit value
	// (keep everything), so zero is not treated as unset. File and env loads
	// get their defaults from viper instead.

	// runner
	if cfg.Runner.Workers == 0 {
		cfg.Runner.Workers = DefaultWorkers()
	}

	// log
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// data
	if cfg.Data.GroupSeparator == "" {
		cfg.Data.GroupSeparator = coords.DefaultGroupSeparator
	}
	if cfg.Data.Delimiter == "" {
		cfg.Data.Delimiter = coords.DefaultDelimiter
	}
}

// defaultKeys are registered with viper so that AutomaticEnv can resolve
// every key during Unmarshal, even without a config file.
func defaultKeys() map[string]any {
	return map[string]any{
		"solver.algorithm":            DefaultAlgorithm,
		"solver.metric":               DefaultMetric,
		"solver.max_iterations":       admixture.DefaultMaxIterations,
		"solver.learning_rate":        admixture.DefaultLearningRate,
		"solver.tolerance":            admixture.DefaultTolerance,
		"solver.coord_max_iterations": admixture.DefaultCoordMaxIterations,
		"solver.coarse_steps":         admixture.DefaultCoarseSteps(),
		"solver.fine_steps":           admixture.DefaultFineSteps(),
		"solver.prune_threshold":      admixture.DefaultPruneThreshold,
		"solver.report_threshold":     report.DefaultThreshold,
		"runner.workers":              DefaultWorkers(),
		"runner.job_timeout":          "0s",
		"log.level":                   DefaultLogLevel,
		"log.format":                  DefaultLogFormat,
		"log.output_paths":            []string{"stderr"},
		"metrics.enabled":             false,
		"metrics.textfile":            "",
		"data.aggregate_sources":      false,
		"data.aggregate_targets":      false,
		"data.group_separator":        coords.DefaultGroupSeparator,
		"data.delimiter":              coords.DefaultDelimiter,
	}
}
