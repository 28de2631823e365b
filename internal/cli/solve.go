package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/g25mix/admixture"
	"github.com/katalvlaran/g25mix/coords"
	"github.com/katalvlaran/g25mix/internal/datafile"
	"github.com/katalvlaran/g25mix/internal/logging"
	"github.com/katalvlaran/g25mix/internal/metrics"
	"github.com/katalvlaran/g25mix/internal/runner"
	"github.com/katalvlaran/g25mix/mixture"
	"github.com/katalvlaran/g25mix/report"
)

// ErrNoTargetSelected indicates a multi-target sheet without --target/--all.
var ErrNoTargetSelected = errors.New("cli: select targets with --target or --all")

type solveOptions struct {
	targetsPath      string
	sourcesPath      string
	targets          []string
	all              bool
	algorithm        string
	metric           string
	aggregate        bool
	aggregateTargets bool
	threshold        float64
	workers          int
	metricsTextfile  string
}

func newSolveCmd() *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Fit targets as convex mixtures of the source populations",
		Example: `  g25mix solve --targets me.txt --sources ancients.txt.zst --aggregate
  g25mix solve --targets modern.txt --sources ancients.txt --all -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.targetsPath, "targets", "t", "", "target sheet (plain, .gz or .zst; - for stdin)")
	f.StringVarP(&o.sourcesPath, "sources", "s", "", "source sheet (plain, .gz or .zst)")
	f.StringSliceVar(&o.targets, "target", nil, "target label to model (repeatable)")
	f.BoolVar(&o.all, "all", false, "model every target in the sheet")
	f.StringVarP(&o.algorithm, "algorithm", "a", "", "gradient or coordinate (default from config)")
	f.StringVar(&o.metric, "metric", "", "rms or euclidean (default from config)")
	f.BoolVar(&o.aggregate, "aggregate", false, "average source samples by label prefix")
	f.BoolVar(&o.aggregateTargets, "aggregate-targets", false, "average target samples by label prefix")
	f.Float64Var(&o.threshold, "threshold", report.DefaultThreshold, "hide components below this weight")
	f.IntVarP(&o.workers, "workers", "w", 0, "concurrent solves (default from config)")
	f.StringVar(&o.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	_ = cmd.MarkFlagRequired("targets")
	_ = cmd.MarkFlagRequired("sources")

	return cmd
}

// solveOutput is the printable result of one solve invocation.
type solveOutput struct {
	Reports []*report.Report `json:"reports"`
	Failed  []string         `json:"failed,omitempty"`
}

func (s solveOutput) Text() string {
	parts := make([]string, len(s.Reports))
	for i, r := range s.Reports {
		parts[i] = r.Text()
	}

	return strings.Join(parts, "\n")
}

func (s solveOutput) TableHeaders() []string {
	return []string{"TARGET", "SOURCE", "PERCENT"}
}

func (s solveOutput) TableRows() [][]string {
	var rows [][]string
	for _, r := range s.Reports {
		for _, cells := range r.TableRows() {
			rows = append(rows, append([]string{r.Target}, cells...))
		}
	}

	return rows
}

func runSolve(cmd *cobra.Command, o *solveOptions) error {
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cc.Config
	log := cc.Logger.Named("solve")

	// Solver options: config first, flags override.
	opts, err := cfg.Solver.Options()
	if err != nil {
		return err
	}
	if o.algorithm != "" {
		if opts.Algo, err = admixture.ParseAlgorithm(o.algorithm); err != nil {
			return err
		}
	}
	if o.metric != "" {
		if opts.Metric, err = mixture.ParseMetric(o.metric); err != nil {
			return err
		}
	}
	solver, err := admixture.New(opts)
	if err != nil {
		return err
	}

	aggSources := cfg.Data.AggregateSources || o.aggregate
	aggTargets := cfg.Data.AggregateTargets || o.aggregateTargets
	sources, err := datafile.LoadCollection(o.sourcesPath, cfg.Data.ParseOptions(aggSources)...)
	if err != nil {
		return err
	}
	targets, err := datafile.LoadCollection(o.targetsPath, cfg.Data.ParseOptions(aggTargets)...)
	if err != nil {
		return err
	}
	log.Debug("sheets loaded",
		logging.Int("sources", sources.Len()),
		logging.Int("targets", targets.Len()),
		logging.Int("dim", sources.Dim()),
	)

	labels, err := selectTargets(targets, o.targets, o.all)
	if err != nil {
		return err
	}
	jobs, err := runner.JobsFor(targets, labels, sources)
	if err != nil {
		return err
	}

	threshold := o.threshold
	if !cmd.Flags().Changed("threshold") {
		threshold = cfg.Solver.ReportThreshold
	}
	workers := cfg.Runner.Workers
	if o.workers > 0 {
		workers = o.workers
	}
	textfile := o.metricsTextfile
	if textfile == "" && cfg.Metrics.Enabled {
		textfile = cfg.Metrics.Textfile
	}
	var m *metrics.Metrics
	if textfile != "" {
		m = metrics.New()
	}

	r := runner.New(solver,
		runner.WithWorkers(workers),
		runner.WithJobTimeout(cfg.Runner.JobTimeout),
		runner.WithLogger(cc.Logger),
		runner.WithMetrics(m),
	)
	outcomes, runErr := r.Run(cmd.Context(), jobs)

	out := solveOutput{}
	var failures []error
	for _, oc := range outcomes {
		if oc.Err != nil {
			failures = append(failures, oc.Err)
			out.Failed = append(out.Failed, oc.Target)
			continue
		}
		rep, err := report.New(oc.Result, oc.Labels)
		if err != nil {
			return err
		}
		out.Reports = append(out.Reports, rep.WithTarget(oc.Target).WithThreshold(threshold))
	}

	if err := m.WriteTextfile(textfile); err != nil {
		log.Warn("metrics export failed", logging.Err(err))
	}
	if err := PrintResult(cmd, out); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	return errors.Join(failures...)
}

// selectTargets resolves --target / --all against the target sheet.
func selectTargets(targets *coords.Collection, requested []string, all bool) ([]string, error) {
	switch {
	case len(requested) > 0:
		return requested, nil
	case all || targets.Len() == 1:
		return targets.Labels(), nil
	default:
		return nil, fmt.Errorf("%d targets in sheet: %w", targets.Len(), ErrNoTargetSelected)
	}
}
