// Package residuals estimates the propellant that stays in the stage at
// burnout: the performance reserve and the unusable liquid trapped in lines,
// sumps and tank bottoms.
package residuals

import (
	"context"
	"errors"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vehicle-design/propbudget/internal/fluids"
	"github.com/vehicle-design/propbudget/internal/logging"
	"github.com/vehicle-design/propbudget/pkg/core"
)

const litresToCubicMetres = 1e-3

var tracer = otel.Tracer("github.com/vehicle-design/propbudget/internal/residuals")

// Tank describes the bulk state of one propellant tank.
type Tank struct {
	// Fluid is the oracle identifier, e.g. "Oxygen".
	Fluid string `json:"fluid" yaml:"fluid"`
	// Temperature is the bulk liquid temperature in K.
	Temperature float64 `json:"temperature" yaml:"temperature"`
	// Pressure is the tank ullage pressure in Pa.
	Pressure float64 `json:"pressure" yaml:"pressure"`
	// UnusableVolume is the trapped liquid volume in L.
	UnusableVolume float64 `json:"unusableVolume" yaml:"unusableVolume"`
}

// Input is everything the estimator needs for one stage.
type Input struct {
	NominalMixtureRatio float64
	// Reserve is the total performance reserve in kg, split by the nominal O/F.
	Reserve  float64
	Oxidizer Tank
	Fuel     Tank
}

// tank returns the tank holding species s.
func (in Input) tank(s core.Species) Tank {
	if s == core.Oxidizer {
		return in.Oxidizer
	}
	return in.Fuel
}

// Budget is the residual propellant of one stage.
type Budget struct {
	Reserve  core.Components `json:"reserve" yaml:"reserve"`
	Unusable core.Components `json:"unusable" yaml:"unusable"`
	// Density is the oracle density in kg/m³ used for each species.
	Density core.Components `json:"density" yaml:"density"`
}

// Residuals returns reserve plus unusable mass per species.
func (b Budget) Residuals() core.Components {
	return b.Reserve.Add(b.Unusable)
}

// Margin is target minus the total residual mass. A negative margin means the
// residuals exceed what the stage was designed to carry.
func (b Budget) Margin(target float64) float64 {
	return target - b.Residuals().Total()
}

// Estimate computes the residual budget. The oracle is called once per species
// and any failure is returned as a *core.DensityLookupError without retrying.
func Estimate(ctx context.Context, oracle fluids.Oracle, in Input) (Budget, error) {
	log := logging.FromContext(ctx)

	if !(in.Reserve >= 0) || math.IsInf(in.Reserve, 0) {
		return Budget{}, &core.InvalidMassError{Field: "reserve", Value: in.Reserve}
	}
	for _, s := range core.AllSpecies {
		v := in.tank(s).UnusableVolume
		if !(v >= 0) || math.IsInf(v, 0) {
			return Budget{}, &core.InvalidMassError{Field: string(s) + ".unusableVolume", Value: v}
		}
	}

	reserve, err := core.Split(in.Reserve, in.NominalMixtureRatio)
	if err != nil {
		return Budget{}, err
	}

	var budget Budget
	budget.Reserve = reserve
	for _, s := range core.AllSpecies {
		t := in.tank(s)
		rho, err := lookup(ctx, oracle, t)
		if err != nil {
			return Budget{}, err
		}
		unusable := t.UnusableVolume * litresToCubicMetres * rho
		switch s {
		case core.Oxidizer:
			budget.Density.Oxidizer = rho
			budget.Unusable.Oxidizer = unusable
		case core.Fuel:
			budget.Density.Fuel = rho
			budget.Unusable.Fuel = unusable
		}
		log.V(logging.DEBUG).Info("Estimated unusable residual",
			"species", s, "fluid", t.Fluid, "density", rho, "mass", unusable)
	}
	return budget, nil
}

func lookup(ctx context.Context, oracle fluids.Oracle, t Tank) (float64, error) {
	ctx, span := tracer.Start(ctx, "fluids.Density", trace.WithAttributes(
		attribute.String("fluid", t.Fluid),
		attribute.Float64("temperature", t.Temperature),
		attribute.Float64("pressure", t.Pressure),
	))
	defer span.End()

	rho, err := oracle.Density(ctx, t.Fluid, t.Temperature, t.Pressure)
	if err == nil && (!(rho > 0) || math.IsInf(rho, 0)) {
		err = errNonPhysicalDensity
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var lookupErr *core.DensityLookupError
		if errors.As(err, &lookupErr) {
			return 0, err
		}
		return 0, &core.DensityLookupError{Fluid: t.Fluid, Temperature: t.Temperature, Pressure: t.Pressure, Err: err}
	}
	return rho, nil
}

var errNonPhysicalDensity = errors.New("oracle returned a non-positive density")
