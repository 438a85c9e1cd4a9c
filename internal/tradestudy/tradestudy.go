// Package tradestudy evaluates independent variants of a vehicle in parallel.
package tradestudy

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"k8s.io/utils/ptr"

	"github.com/vehicle-design/propbudget/internal/budget"
	"github.com/vehicle-design/propbudget/internal/logging"
	"github.com/vehicle-design/propbudget/internal/planner"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
	"github.com/vehicle-design/propbudget/pkg/core"
)

// Runner evaluates one configuration. *planner.Planner satisfies it.
type Runner interface {
	Run(ctx context.Context, cfg vehicle.VehicleConfig) (*planner.Report, error)
}

// Mutator names a parameter and builds the overrides for one of its values.
type Mutator struct {
	// Parameter is the swept quantity, e.g. "stage1Isp".
	Parameter string
	Unit      string
	Apply     func(value float64) vehicle.Overrides
}

// Stage1Isp sweeps the specific impulse of the first stage.
var Stage1Isp = Mutator{
	Parameter: "stage1Isp",
	Unit:      "s",
	Apply: func(v float64) vehicle.Overrides {
		return vehicle.Overrides{Stage1Isp: ptr.To(v)}
	},
}

// PayloadMass sweeps the payload carried by the top stage.
var PayloadMass = Mutator{
	Parameter: "payloadMass",
	Unit:      "kg",
	Apply: func(v float64) vehicle.Overrides {
		return vehicle.Overrides{PayloadMass: ptr.To(v)}
	},
}

// Altitude sweeps the target orbit altitude.
var Altitude = Mutator{
	Parameter: "altitude",
	Unit:      "m",
	Apply: func(v float64) vehicle.Overrides {
		return vehicle.Overrides{Altitude: ptr.To(v)}
	},
}

// Mutators lists the built-in mutators by parameter name.
var Mutators = map[string]Mutator{
	Stage1Isp.Parameter:   Stage1Isp,
	PayloadMass.Parameter: PayloadMass,
	Altitude.Parameter:    Altitude,
}

// Result is the outcome of one variant.
type Result struct {
	Value  float64         `json:"value" yaml:"value"`
	Report *planner.Report `json:"report,omitempty" yaml:"report,omitempty"`
	// Error is set when the variant failed or its load budget went negative.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Kind is the core error kind of Error.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Study is the outcome of a sweep, in the order the values were given.
type Study struct {
	Parameter string   `json:"parameter" yaml:"parameter"`
	Unit      string   `json:"unit" yaml:"unit"`
	Results   []Result `json:"results" yaml:"results"`
}

// Sweep evaluates base with m applied for every value, running at most limit
// variants at once (limit <= 0 means no limit). Variants are independent: a
// variant that fails is reported in its Result and does not stop the others.
// Only context cancellation aborts the sweep.
func Sweep(ctx context.Context, r Runner, base vehicle.VehicleConfig, m Mutator, values []float64, limit int) (*Study, error) {
	log := logging.FromContext(ctx).WithValues("parameter", m.Parameter)
	study := &Study{
		Parameter: m.Parameter,
		Unit:      m.Unit,
		Results:   make([]Result, len(values)),
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, value := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				study.Results[i] = Result{Value: value, Error: fmt.Sprintf("non-finite %s", m.Parameter), Kind: "other"}
				return nil
			}
			cfg := m.Apply(value).Apply(base)
			report, err := r.Run(ctx, cfg)
			res := Result{Value: value, Report: report}
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				res.Error = err.Error()
				res.Kind = core.Kind(err)
				if !budget.IsWarning(err) {
					res.Report = nil
				}
				log.V(logging.DEBUG).Info("Variant failed", "value", value, "error", err)
			}
			study.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return study, nil
}

// Range returns n evenly spaced values from start to stop inclusive.
func Range(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}
