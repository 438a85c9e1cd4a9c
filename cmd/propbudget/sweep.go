package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vehicle-design/propbudget/internal/tradestudy"
)

type sweepOptions struct {
	parameter string
	from, to  float64
	steps     int
	values    []float64
}

func newSweepCommand(a *app) *cobra.Command {
	o := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the vehicle for a range of values of one parameter",
		Example: `  propbudget sweep --parameter stage1Isp --from 250 --to 320 --steps 8
  propbudget sweep --parameter payloadMass --values 500,1000,2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			m, ok := tradestudy.Mutators[o.parameter]
			if !ok {
				return a.finish(ctx, fmt.Errorf("unknown sweep parameter %q, expected one of %s",
					o.parameter, strings.Join(mutatorNames(), ", ")))
			}
			values, err := o.sweepValues()
			if err != nil {
				return a.finish(ctx, err)
			}
			study, err := tradestudy.Sweep(ctx, a.planner, a.cfg.VehicleConfig, m, values, a.cfg.Sweep.Parallelism)
			if err != nil {
				return a.finish(ctx, err)
			}
			return a.finish(ctx, a.render(cmd, study))
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.parameter, "parameter", tradestudy.Stage1Isp.Parameter,
		"swept parameter: "+strings.Join(mutatorNames(), ", "))
	f.Float64Var(&o.from, "from", 0, "first value of an evenly spaced range")
	f.Float64Var(&o.to, "to", 0, "last value of an evenly spaced range")
	f.IntVar(&o.steps, "steps", 0, "number of values in the range, at least 2")
	f.Float64SliceVar(&o.values, "values", nil, "explicit values, instead of --from/--to/--steps")
	f.Int("parallelism", 4, "maximum number of variants evaluated at once; 0 means unbounded")
	cmd.MarkFlagsMutuallyExclusive("values", "steps")
	return cmd
}

func (o *sweepOptions) sweepValues() ([]float64, error) {
	if len(o.values) > 0 {
		return o.values, nil
	}
	if o.steps < 2 {
		return nil, fmt.Errorf("either --values or --from, --to and --steps >= 2 are required")
	}
	return tradestudy.Range(o.from, o.to, o.steps), nil
}

func mutatorNames() []string {
	names := make([]string, 0, len(tradestudy.Mutators))
	for name := range tradestudy.Mutators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
