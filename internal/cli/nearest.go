package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/g25mix/admixture"
	"github.com/katalvlaran/g25mix/internal/datafile"
	"github.com/katalvlaran/g25mix/mixture"
)

type nearestOptions struct {
	targetsPath string
	sourcesPath string
	target      string
	k           int
	metric      string
	aggregate   bool
}

func newNearestCmd() *cobra.Command {
	o := &nearestOptions{}
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Rank source populations by distance to a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNearest(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.targetsPath, "targets", "t", "", "target sheet")
	f.StringVarP(&o.sourcesPath, "sources", "s", "", "source sheet")
	f.StringVar(&o.target, "target", "", "target label (optional for single-target sheets)")
	f.IntVarP(&o.k, "k", "k", 5, "number of populations to list (0 = all)")
	f.StringVar(&o.metric, "metric", "", "rms or euclidean (default from config)")
	f.BoolVar(&o.aggregate, "aggregate", false, "average source samples by label prefix")
	_ = cmd.MarkFlagRequired("targets")
	_ = cmd.MarkFlagRequired("sources")

	return cmd
}

// nearestOutput lists the closest populations to one target.
type nearestOutput struct {
	Target    string               `json:"target"`
	Metric    string               `json:"metric"`
	Neighbors []admixture.Neighbor `json:"neighbors"`
}

func (n nearestOutput) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Distance to: %s\n", n.Target)
	for _, nb := range n.Neighbors {
		fmt.Fprintf(&sb, "%.8f %s\n", nb.Distance, nb.Label)
	}

	return sb.String()
}

func (n nearestOutput) TableHeaders() []string { return []string{"RANK", "POPULATION", "DISTANCE"} }

func (n nearestOutput) TableRows() [][]string {
	rows := make([][]string, len(n.Neighbors))
	for i, nb := range n.Neighbors {
		rows[i] = []string{strconv.Itoa(i + 1), nb.Label, fmt.Sprintf("%.8f", nb.Distance)}
	}

	return rows
}

func runNearest(cmd *cobra.Command, o *nearestOptions) error {
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cc.Config

	metric, err := mixture.ParseMetric(cfg.Solver.Metric)
	if err != nil {
		return err
	}
	if o.metric != "" {
		if metric, err = mixture.ParseMetric(o.metric); err != nil {
			return err
		}
	}

	sources, err := datafile.LoadCollection(o.sourcesPath, cfg.Data.ParseOptions(cfg.Data.AggregateSources || o.aggregate)...)
	if err != nil {
		return err
	}
	targets, err := datafile.LoadCollection(o.targetsPath, cfg.Data.ParseOptions(cfg.Data.AggregateTargets)...)
	if err != nil {
		return err
	}

	var requested []string
	if o.target != "" {
		requested = []string{o.target}
	}
	labels, err := selectTargets(targets, requested, false)
	if err != nil {
		return err
	}
	tv, ok := targets.Get(labels[0])
	if !ok {
		return fmt.Errorf("unknown target %q", labels[0])
	}

	neighbors, err := admixture.Nearest(tv.Coords, sources, o.k, metric)
	if err != nil {
		return err
	}

	return PrintResult(cmd, nearestOutput{Target: tv.Label, Metric: metric.String(), Neighbors: neighbors})
}
