package planner

import (
	"context"
	"errors"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vehicle-design/propbudget/internal/budget"
	"github.com/vehicle-design/propbudget/internal/engines/losses"
	"github.com/vehicle-design/propbudget/internal/fluids"
	"github.com/vehicle-design/propbudget/internal/logging"
	"github.com/vehicle-design/propbudget/internal/residuals"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
	"github.com/vehicle-design/propbudget/pkg/core"
	"github.com/vehicle-design/propbudget/pkg/solver"
)

// fractionTolerance bounds |Σ fractions − 1| before a warning is logged.
const fractionTolerance = 1e-9

// Phase names used for spans and failure metrics.
const (
	PhaseSizing = "sizing"
	PhaseBudget = "budget"
)

var tracer = otel.Tracer("github.com/vehicle-design/propbudget/internal/planner")

// Recorder receives the outcome of every phase.
type Recorder interface {
	RecordSizing(vehicle string, r *SizingReport)
	RecordBudget(vehicle string, r *BudgetReport)
	RecordFailure(phase string, err error)
}

// Planner runs the sizing and mass-budget computations.
// It holds no per-run state and is safe for concurrent use when its oracle is.
type Planner struct {
	oracle   fluids.Oracle
	recorder Recorder
	body     solver.Body
}

// Option configures a Planner.
type Option func(*Planner)

// WithRecorder reports every phase outcome to r.
func WithRecorder(r Recorder) Option {
	return func(p *Planner) { p.recorder = r }
}

// WithBody replaces the central body the orbit is computed around.
func WithBody(b solver.Body) Option {
	return func(p *Planner) { p.body = b }
}

// New creates a Planner that looks densities up in oracle.
func New(oracle fluids.Oracle, opts ...Option) *Planner {
	p := &Planner{oracle: oracle, body: solver.Earth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes both paths. On a negative load figure the full report is
// returned together with the warnings; any other error returns no report.
// Phase results reach the recorder only once both paths have completed.
func (p *Planner) Run(ctx context.Context, cfg vehicle.VehicleConfig) (*Report, error) {
	ctx, span := tracer.Start(ctx, "planner.Run", trace.WithAttributes(attribute.String("vehicle", cfg.Name)))
	defer span.End()

	sizing, err := p.runSizing(ctx, cfg)
	if err != nil {
		return nil, endSpan(span, err)
	}
	b, err := p.runBudget(ctx, cfg)
	if err != nil && !budget.IsWarning(err) {
		return nil, endSpan(span, err)
	}
	p.recordSizing(cfg.Name, sizing)
	p.recordBudget(cfg.Name, b)
	return &Report{Vehicle: cfg.Name, Sizing: sizing, Budget: b}, err
}

// Size runs the delta-v sizing path.
func (p *Planner) Size(ctx context.Context, cfg vehicle.VehicleConfig) (*SizingReport, error) {
	report, err := p.runSizing(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p.recordSizing(cfg.Name, report)
	return report, nil
}

func (p *Planner) runSizing(ctx context.Context, cfg vehicle.VehicleConfig) (*SizingReport, error) {
	ctx, span := tracer.Start(ctx, "planner.Size")
	defer span.End()
	log := logging.FromContext(ctx).WithValues("vehicle", cfg.Name, "phase", PhaseSizing)

	report, err := p.size(cfg)
	if err != nil {
		p.recordFailure(PhaseSizing, err)
		return nil, endSpan(span, err)
	}

	if math.Abs(report.FractionsSum-1) > fractionTolerance {
		log.Info("Stage delta-v fractions do not sum to one, total delta-v is not fully allocated",
			"fractionsSum", report.FractionsSum)
	}
	for _, s := range report.Stages {
		log.V(logging.DEBUG).Info("Sized stage",
			"stage", s.Name,
			"deltaV", s.DeltaV,
			"massRatio", s.MassRatio,
			"wetMass", s.WetMass,
			"propellantMass", s.PropellantMass)
	}
	span.SetAttributes(attribute.Float64("liftoffMass", report.LiftoffMass))
	return report, nil
}

func (p *Planner) size(cfg vehicle.VehicleConfig) (*SizingReport, error) {
	allowances := solver.Losses{
		Gravity:  cfg.Sizing.Losses.Gravity,
		Drag:     cfg.Sizing.Losses.Drag,
		Steering: cfg.Sizing.Losses.Steering,
	}
	velocity, err := solver.NewVelocityBudget(p.body, cfg.Sizing.Altitude, allowances)
	if err != nil {
		return nil, err
	}
	fractions := cfg.Sizing.Fractions()
	deltaV := solver.Allocate(velocity.Total(), fractions)

	stages := make([]solver.StageInput, len(cfg.Sizing.Stages))
	for i, s := range cfg.Sizing.Stages {
		stages[i] = solver.StageInput{
			Name:            s.Name,
			DeltaV:          deltaV[i],
			SpecificImpulse: s.SpecificImpulse,
			DryMass:         s.DryMass,
		}
	}
	results, err := solver.Cascade(cfg.Sizing.PayloadMass, stages)
	if err != nil {
		return nil, err
	}
	return &SizingReport{
		Velocity:     velocity,
		TotalDeltaV:  velocity.Total(),
		FractionsSum: solver.FractionsSum(fractions),
		Stages:       results,
		LiftoffMass:  solver.LiftoffMass(results),
	}, nil
}

// Budget runs the mass-budget path for the configured stage.
func (p *Planner) Budget(ctx context.Context, cfg vehicle.VehicleConfig) (*BudgetReport, error) {
	report, err := p.runBudget(ctx, cfg)
	if err != nil && !budget.IsWarning(err) {
		return nil, err
	}
	p.recordBudget(cfg.Name, report)
	return report, err
}

func (p *Planner) runBudget(ctx context.Context, cfg vehicle.VehicleConfig) (*BudgetReport, error) {
	ctx, span := tracer.Start(ctx, "planner.Budget", trace.WithAttributes(attribute.String("stage", cfg.Budget.Stage)))
	defer span.End()
	log := logging.FromContext(ctx).WithValues("vehicle", cfg.Name, "phase", PhaseBudget)

	bc := cfg.Budget
	if err := validateBudget(bc); err != nil {
		p.recordFailure(PhaseBudget, err)
		return nil, endSpan(span, err)
	}
	accounting := losses.FuelAccounting(bc.MultiIgnitionFuelAccounting)
	if accounting == losses.FuelAccountingSourceCompatible {
		log.Info("Multi-ignition fuel accounting omits startup fuel; fuel losses are under-counted for multi-ignition stages",
			"fuelAccounting", accounting)
	}

	lossResult, err := losses.Account(lossInput(bc), &losses.PolicyConfig{MultiIgnitionFuelAccounting: accounting})
	if err != nil {
		p.recordFailure(PhaseBudget, err)
		return nil, endSpan(span, err)
	}

	res, err := residuals.Estimate(ctx, p.oracle, residuals.Input{
		NominalMixtureRatio: bc.NominalMixtureRatio,
		Reserve:             bc.Reserve,
		Oxidizer:            tank(bc.Oxidizer),
		Fuel:                tank(bc.Fuel),
	})
	if err != nil {
		p.recordFailure(PhaseBudget, err)
		return nil, endSpan(span, err)
	}

	burnable, err := core.Split(bc.BurnableMass, bc.NominalMixtureRatio)
	if err != nil {
		p.recordFailure(PhaseBudget, err)
		return nil, endSpan(span, err)
	}

	load, warn := budget.Aggregate(budget.Input{
		Burnable:    burnable,
		PreLiftoff:  lossResult.PreLiftoff,
		PostLiftoff: lossResult.PostLiftoff,
		TopOff:      core.Components{Oxidizer: bc.Oxidizer.TopOff, Fuel: bc.Fuel.TopOff},
	})

	report := &BudgetReport{
		Stage:          bc.Stage,
		Policy:         lossResult.Policy,
		Burnable:       burnable,
		Residuals:      res,
		ResidualTarget: bc.ResidualTarget,
		ResidualMargin: res.Margin(bc.ResidualTarget),
		Losses:         lossResult,
		Load:           load,
	}
	if lossResult.Policy == losses.MultiIgnition.String() {
		report.FuelAccounting = string(accounting)
		if report.FuelAccounting == "" {
			report.FuelAccounting = string(losses.FuelAccountingComplete)
		}
	}
	report.Totals = totalsOf(report)

	if report.ResidualMargin < 0 {
		log.Info("Residuals exceed the residual target",
			"residuals", report.Totals.Residuals,
			"target", report.ResidualTarget,
			"margin", report.ResidualMargin)
	}
	if warn != nil {
		var joined interface{ Unwrap() []error }
		if errors.As(warn, &joined) {
			for _, w := range joined.Unwrap() {
				report.Warnings = append(report.Warnings, w.Error())
			}
		}
		log.Info("Load budget is negative", "warnings", report.Warnings)
		p.recordFailure(PhaseBudget, warn)
	}

	log.V(logging.DEBUG).Info("Budgeted stage",
		"policy", report.Policy,
		"liftoff", report.Totals.Liftoff,
		"autosequence", report.Totals.Autosequence)
	return report, warn
}

// validateBudget rejects stage masses that are negative or not finite before
// any loss or density work is done.
func validateBudget(bc vehicle.BudgetConfig) error {
	for _, m := range []struct {
		field string
		value float64
	}{
		{"budget.burnableMass", bc.BurnableMass},
		{"budget.reserve", bc.Reserve},
		{"budget.residualTarget", bc.ResidualTarget},
		{"budget.oxidizer.topOff", bc.Oxidizer.TopOff},
		{"budget.fuel.topOff", bc.Fuel.TopOff},
	} {
		if !(m.value >= 0) || math.IsInf(m.value, 0) {
			return &core.InvalidMassError{Field: m.field, Value: m.value}
		}
	}
	return nil
}

func lossInput(bc vehicle.BudgetConfig) losses.Input {
	transient := func(t vehicle.TransientConfig) losses.Transient {
		return losses.Transient{TotalLoss: t.TotalLoss, MixtureRatio: t.MixtureRatio}
	}
	return losses.Input{
		EngineCount:         bc.Engines.Count,
		IgnitionsPerEngine:  bc.Engines.IgnitionsPerEngine,
		NominalMixtureRatio: bc.NominalMixtureRatio,
		Startup:             transient(bc.Transients.Startup),
		Chilldown:           transient(bc.Transients.Chilldown),
		Shutdown:            transient(bc.Transients.Shutdown),
		Hotfire: losses.Hotfire{
			Duration:     bc.Engines.Hotfire.Duration,
			MassFlowRate: bc.Engines.Hotfire.MassFlowRate,
		},
		BoilOff: core.Components{Oxidizer: bc.Oxidizer.BoilOff, Fuel: bc.Fuel.BoilOff},
		Leakage: core.Components{Oxidizer: bc.Oxidizer.Leakage, Fuel: bc.Fuel.Leakage},
	}
}

func tank(t vehicle.TankConfig) residuals.Tank {
	return residuals.Tank{
		Fluid:          t.Fluid,
		Temperature:    t.Temperature,
		Pressure:       t.Pressure,
		UnusableVolume: t.UnusableVolume,
	}
}

func (p *Planner) recordSizing(name string, r *SizingReport) {
	if p.recorder != nil {
		p.recorder.RecordSizing(name, r)
	}
}

func (p *Planner) recordBudget(name string, r *BudgetReport) {
	if p.recorder != nil {
		p.recorder.RecordBudget(name, r)
	}
}

func (p *Planner) recordFailure(phase string, err error) {
	if p.recorder != nil {
		p.recorder.RecordFailure(phase, err)
	}
}

func endSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
