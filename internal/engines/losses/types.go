package losses

import (
	"math"

	"github.com/vehicle-design/propbudget/pkg/core"
)

// EventKind names a propellant loss transient.
type EventKind string

const (
	EventStartup   EventKind = "startup"
	EventChilldown EventKind = "chilldown"
	EventHotfire   EventKind = "hotfire"
	EventShutdown  EventKind = "shutdown"
	EventBoilOff   EventKind = "boil-off"
	EventLeakage   EventKind = "leakage"
)

// Phase places a loss before or after liftoff.
type Phase string

const (
	PhaseBeforeLiftoff Phase = "before-liftoff"
	PhaseAfterLiftoff  Phase = "after-liftoff"
)

// Transient is the propellant expelled by one engine during one transient
// event, with the O/F ratio of that event.
type Transient struct {
	// TotalLoss is the oxidizer+fuel mass per engine per ignition, in kg.
	TotalLoss float64 `json:"totalLoss" yaml:"totalLoss"`
	// MixtureRatio is the O/F ratio of the expelled mass.
	MixtureRatio float64 `json:"mixtureRatio" yaml:"mixtureRatio"`
}

// Hotfire describes an on-pad static fire.
type Hotfire struct {
	// Duration per engine per ignition, in s.
	Duration float64 `json:"duration" yaml:"duration"`
	// MassFlowRate per engine at the nominal mixture ratio, in kg/s.
	MassFlowRate float64 `json:"massFlowRate" yaml:"massFlowRate"`
}

// Input carries every loss magnitude for one stage.
type Input struct {
	EngineCount        int
	IgnitionsPerEngine int
	// NominalMixtureRatio splits the hotfire consumption.
	NominalMixtureRatio float64

	Startup   Transient
	Chilldown Transient
	Shutdown  Transient
	Hotfire   Hotfire

	// BoilOff and Leakage are already split per species.
	BoilOff core.Components
	Leakage core.Components
}

// Event is one contribution to the loss totals.
type Event struct {
	Kind  EventKind       `json:"kind" yaml:"kind"`
	Phase Phase           `json:"phase" yaml:"phase"`
	Mass  core.Components `json:"mass" yaml:"mass"`
}

// Result is the output of a policy.
type Result struct {
	Policy      string          `json:"policy" yaml:"policy"`
	PreLiftoff  core.Components `json:"preLiftoff" yaml:"preLiftoff"`
	PostLiftoff core.Components `json:"postLiftoff" yaml:"postLiftoff"`
	Events      []Event         `json:"events" yaml:"events"`
}

// Total returns all propellant expelled before and after liftoff.
func (r Result) Total() core.Components {
	return r.PreLiftoff.Add(r.PostLiftoff)
}

// eventScale is the number of engine-ignitions each transient is counted for.
func (in Input) eventScale() float64 {
	return float64(in.EngineCount) * float64(in.IgnitionsPerEngine)
}

// Validate checks every count, magnitude and ratio before any arithmetic runs.
func (in Input) Validate() error {
	if in.EngineCount < 0 {
		return &core.InvalidLossInputError{Field: "engineCount", Value: float64(in.EngineCount)}
	}
	if in.IgnitionsPerEngine < 0 {
		return &core.InvalidLossInputError{Field: "ignitionsPerEngine", Value: float64(in.IgnitionsPerEngine)}
	}
	masses := []struct {
		field string
		value float64
	}{
		{"startup.totalLoss", in.Startup.TotalLoss},
		{"chilldown.totalLoss", in.Chilldown.TotalLoss},
		{"shutdown.totalLoss", in.Shutdown.TotalLoss},
		{"hotfire.duration", in.Hotfire.Duration},
		{"hotfire.massFlowRate", in.Hotfire.MassFlowRate},
		{"boilOff.oxidizer", in.BoilOff.Oxidizer},
		{"boilOff.fuel", in.BoilOff.Fuel},
		{"leakage.oxidizer", in.Leakage.Oxidizer},
		{"leakage.fuel", in.Leakage.Fuel},
	}
	for _, m := range masses {
		if !(m.value >= 0) || math.IsInf(m.value, 0) {
			return &core.InvalidLossInputError{Field: m.field, Value: m.value}
		}
	}
	ratios := []struct {
		name  string
		value float64
	}{
		{"nominal", in.NominalMixtureRatio},
		{string(EventStartup), in.Startup.MixtureRatio},
		{string(EventChilldown), in.Chilldown.MixtureRatio},
		{string(EventShutdown), in.Shutdown.MixtureRatio},
	}
	for _, r := range ratios {
		if !(r.value > 0) || math.IsInf(r.value, 0) {
			return &core.InvalidRatioError{Name: r.name, Ratio: r.value}
		}
	}
	// Stage totals must stay finite once scaled to every engine-ignition.
	scale := in.eventScale()
	totals := []struct {
		field string
		value float64
	}{
		{"startup.totalLoss", in.Startup.TotalLoss * scale},
		{"chilldown.totalLoss", in.Chilldown.TotalLoss * scale},
		{"shutdown.totalLoss", in.Shutdown.TotalLoss * scale},
		{"hotfire.consumption", in.hotfireTotal()},
	}
	for _, m := range totals {
		if !(m.value >= 0) || math.IsInf(m.value, 0) {
			return &core.InvalidLossInputError{Field: m.field, Value: m.value}
		}
	}
	return nil
}

// hotfireTotal is the static-fire consumption of the whole stage.
func (in Input) hotfireTotal() float64 {
	return in.Hotfire.MassFlowRate * in.Hotfire.Duration * in.eventScale()
}

// transient splits one transient by its own O/F and scales it to all
// engine-ignitions.
func (in Input) transient(t Transient) (core.Components, error) {
	c, err := core.Split(t.TotalLoss, t.MixtureRatio)
	if err != nil {
		return core.Components{}, err
	}
	return c.Scale(in.eventScale()), nil
}
