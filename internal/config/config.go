// Package config loads g25mix settings from a YAML file and G25MIX_*
// environment variables, fills defaults and validates the result.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/g25mix/admixture"
	"github.com/katalvlaran/g25mix/coords"
	"github.com/katalvlaran/g25mix/internal/logging"
	"github.com/katalvlaran/g25mix/mixture"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root configuration.
type Config struct {
	Solver  SolverConfig   `mapstructure:"solver"`
	Runner  RunnerConfig   `mapstructure:"runner"`
	Log     logging.Config `mapstructure:"log"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Data    DataConfig     `mapstructure:"data"`
}

// SolverConfig mirrors admixture.Options in config-friendly types.
type SolverConfig struct {
	Algorithm          string    `mapstructure:"algorithm"` // "gradient" | "coordinate"
	Metric             string    `mapstructure:"metric"`    // "rms" | "euclidean"
	MaxIterations      int       `mapstructure:"max_iterations"`
	LearningRate       float64   `mapstructure:"learning_rate"`
	Tolerance          float64   `mapstructure:"tolerance"`
	CoordMaxIterations int       `mapstructure:"coord_max_iterations"`
	CoarseSteps        []float64 `mapstructure:"coarse_steps"`
	FineSteps          []float64 `mapstructure:"fine_steps"`
	PruneThreshold     float64   `mapstructure:"prune_threshold"`

	// ReportThreshold hides components below it in text and table output.
	ReportThreshold float64 `mapstructure:"report_threshold"`
}

// RunnerConfig bounds concurrent solves.
type RunnerConfig struct {
	Workers    int           `mapstructure:"workers"`
	JobTimeout time.Duration `mapstructure:"job_timeout"` // 0 = no per-job deadline
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

// DataConfig controls how coordinate sheets are parsed.
type DataConfig struct {
	AggregateSources bool   `mapstructure:"aggregate_sources"`
	AggregateTargets bool   `mapstructure:"aggregate_targets"`
	GroupSeparator   string `mapstructure:"group_separator"`
	Delimiter        string `mapstructure:"delimiter"`
}

// Options converts the solver section into admixture.Options.
func (s SolverConfig) Options() (admixture.Options, error) {
	algo, err := admixture.ParseAlgorithm(s.Algorithm)
	if err != nil {
		return admixture.Options{}, err
	}
	metric, err := mixture.ParseMetric(s.Metric)
	if err != nil {
		return admixture.Options{}, err
	}

	return admixture.Options{
		Algo:               algo,
		Metric:             metric,
		MaxIterations:      s.MaxIterations,
		LearningRate:       s.LearningRate,
		Tolerance:          s.Tolerance,
		CoordMaxIterations: s.CoordMaxIterations,
		CoarseSteps:        append([]float64(nil), s.CoarseSteps...),
		FineSteps:          append([]float64(nil), s.FineSteps...),
		PruneThreshold:     s.PruneThreshold,
	}, nil
}

// ParseOptions returns the coords options for source (or target) sheets.
func (d DataConfig) ParseOptions(aggregate bool) []coords.Option {
	opts := []coords.Option{coords.WithAggregateIf(aggregate)}
	if d.Delimiter != "" {
		opts = append(opts, coords.WithDelimiter(d.Delimiter))
	}
	if d.GroupSeparator != "" {
		opts = append(opts, coords.WithGroupSeparator(d.GroupSeparator))
	}

	return opts
}

// Validate checks cross-field constraints. Solver limits are delegated to
// admixture.Options.Validate so the rules live in one place.
func (c *Config) Validate() error {
	opts, err := c.Solver.Options()
	if err != nil {
		return fmt.Errorf("solver: %v: %w", err, ErrInvalidConfig)
	}
	if err = opts.Validate(); err != nil {
		return fmt.Errorf("solver: %v: %w", err, ErrInvalidConfig)
	}
	if c.Solver.ReportThreshold < 0 || c.Solver.ReportThreshold >= 1 {
		return fmt.Errorf("solver.report_threshold %g: %w", c.Solver.ReportThreshold, ErrInvalidConfig)
	}
	if c.Runner.Workers <= 0 {
		return fmt.Errorf("runner.workers %d: %w", c.Runner.Workers, ErrInvalidConfig)
	}
	if c.Runner.JobTimeout < 0 {
		return fmt.Errorf("runner.job_timeout %s: %w", c.Runner.JobTimeout, ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Textfile == "" {
		return fmt.Errorf("metrics.textfile required when metrics.enabled: %w", ErrInvalidConfig)
	}
	if c.Data.GroupSeparator == c.Data.Delimiter {
		return fmt.Errorf("data.group_separator equals data.delimiter %q: %w", c.Data.Delimiter, ErrInvalidConfig)
	}

	return nil
}
