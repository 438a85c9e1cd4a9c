package actuator

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/vehicle-design/propbudget/internal/budget"
	"github.com/vehicle-design/propbudget/internal/planner"
	"github.com/vehicle-design/propbudget/pkg/core"
)

const namespace = "propbudget"

// MetricsEmitter records run outcomes in a private Prometheus registry.
type MetricsEmitter struct {
	registry *prometheus.Registry

	stageWetMass        *prometheus.GaugeVec
	stagePropellantMass *prometheus.GaugeVec
	vehicleLiftoffMass  *prometheus.GaugeVec
	loadMass            *prometheus.GaugeVec
	residualMargin      *prometheus.GaugeVec
	runs                *prometheus.CounterVec
	failures            *prometheus.CounterVec
}

var _ planner.Recorder = (*MetricsEmitter)(nil)

// NewMetricsEmitter creates an emitter with its own registry.
func NewMetricsEmitter() *MetricsEmitter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &MetricsEmitter{
		registry: reg,
		stageWetMass: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stage_wet_mass_kg",
				Help:      "Wet mass of each sized stage including everything it carries above it",
			},
			[]string{"vehicle", "stage"},
		),
		stagePropellantMass: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stage_propellant_mass_kg",
				Help:      "Propellant mass of each sized stage",
			},
			[]string{"vehicle", "stage"},
		),
		vehicleLiftoffMass: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "vehicle_liftoff_mass_kg",
				Help:      "Gross liftoff mass of the sized vehicle",
			},
			[]string{"vehicle"},
		),
		loadMass: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "load_mass_kg",
				Help:      "Propellant load per species at liftoff and at autosequence start",
			},
			[]string{"vehicle", "stage", "species", "figure"},
		),
		residualMargin: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "residual_margin_kg",
				Help:      "Residual target minus computed residuals",
			},
			[]string{"vehicle", "stage"},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "phase_runs_total",
				Help:      "Completed computation phases",
			},
			[]string{"phase"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "phase_failures_total",
				Help:      "Failed computation phases by error kind",
			},
			[]string{"phase", "kind"},
		),
	}
}

// Registry returns the emitter's registry.
func (m *MetricsEmitter) Registry() *prometheus.Registry {
	return m.registry
}

// RecordSizing implements planner.Recorder.
func (m *MetricsEmitter) RecordSizing(vehicle string, r *planner.SizingReport) {
	for _, s := range r.Stages {
		m.stageWetMass.WithLabelValues(vehicle, s.Name).Set(s.WetMass)
		m.stagePropellantMass.WithLabelValues(vehicle, s.Name).Set(s.PropellantMass)
	}
	m.vehicleLiftoffMass.WithLabelValues(vehicle).Set(r.LiftoffMass)
	m.runs.WithLabelValues(planner.PhaseSizing).Inc()
}

// RecordBudget implements planner.Recorder.
func (m *MetricsEmitter) RecordBudget(vehicle string, r *planner.BudgetReport) {
	for _, s := range core.AllSpecies {
		m.loadMass.WithLabelValues(vehicle, r.Stage, string(s), budget.FigureLiftoff).Set(r.Load.Liftoff.Get(s))
		m.loadMass.WithLabelValues(vehicle, r.Stage, string(s), budget.FigureAutosequence).Set(r.Load.Autosequence.Get(s))
	}
	m.residualMargin.WithLabelValues(vehicle, r.Stage).Set(r.ResidualMargin)
	m.runs.WithLabelValues(planner.PhaseBudget).Inc()
}

// RecordFailure implements planner.Recorder.
func (m *MetricsEmitter) RecordFailure(phase string, err error) {
	m.failures.WithLabelValues(phase, core.Kind(err)).Inc()
}

// WriteTextfile atomically writes all metrics to path in the node-exporter
// textfile format.
func (m *MetricsEmitter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// WriteText writes all metrics to w in the Prometheus text exposition format.
func (m *MetricsEmitter) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
