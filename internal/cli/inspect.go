package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/g25mix/internal/datafile"
	"github.com/katalvlaran/g25mix/matrix"
)

func newInspectCmd() *cobra.Command {
	var aggregate, stats bool
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the labels and dimensionality of a coordinate sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			coll, err := datafile.LoadCollection(args[0], cc.Config.Data.ParseOptions(aggregate)...)
			if err != nil {
				return err
			}

			out := inspectOutput{
				File:       args[0],
				Aggregated: aggregate,
				Dim:        coll.Dim(),
				Labels:     coll.Labels(),
			}
			if stats {
				X, err := matrix.NewFromRows(coll.Coords())
				if err != nil {
					return err
				}
				if out.Means, out.StdDevs, err = matrix.ColumnStdDevs(X); err != nil {
					return err
				}
			}

			return PrintResult(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&aggregate, "aggregate", false, "average samples by label prefix")
	cmd.Flags().BoolVar(&stats, "stats", false, "append per-dimension mean and standard deviation")

	return cmd
}

type inspectOutput struct {
	File       string    `json:"file"`
	Aggregated bool      `json:"aggregated"`
	Dim        int       `json:"dim"`
	Labels     []string  `json:"labels"`
	Means      []float64 `json:"means,omitempty"`
	StdDevs    []float64 `json:"std_devs,omitempty"`
}

func (i inspectOutput) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d vectors, %d dimensions\n", i.File, len(i.Labels), i.Dim)
	for _, l := range i.Labels {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if len(i.Means) > 0 {
		sb.WriteString("\nDIM  MEAN  STDDEV\n")
		for d := range i.Means {
			fmt.Fprintf(&sb, "PC%d %.6f %.6f\n", d+1, i.Means[d], i.StdDevs[d])
		}
	}

	return sb.String()
}

func (i inspectOutput) TableHeaders() []string { return []string{"#", "LABEL"} }

func (i inspectOutput) TableRows() [][]string {
	rows := make([][]string, len(i.Labels))
	for n, l := range i.Labels {
		rows[n] = []string{fmt.Sprint(n + 1), l}
	}

	return rows
}
