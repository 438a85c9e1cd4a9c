package losses

import (
	"github.com/vehicle-design/propbudget/pkg/core"
)

// SingleIgnitionPolicy models a stage whose engines are static-fired on the pad
// (at most once per engine) and then lit for flight.
//
// Before liftoff: startup and chilldown transients plus the hotfire consumption.
// After liftoff: the shutdown transient plus boil-off and leakage.
type SingleIgnitionPolicy struct{}

// NewSingleIgnitionPolicy creates a new SingleIgnitionPolicy.
func NewSingleIgnitionPolicy() *SingleIgnitionPolicy {
	return &SingleIgnitionPolicy{}
}

func (p *SingleIgnitionPolicy) Name() string { return SingleIgnition.String() }

// ComputeLosses implements IgnitionPolicy.
func (p *SingleIgnitionPolicy) ComputeLosses(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	startup, err := in.transient(in.Startup)
	if err != nil {
		return Result{}, err
	}
	chilldown, err := in.transient(in.Chilldown)
	if err != nil {
		return Result{}, err
	}

	// Hotfire consumption is already a stage total and burns at the nominal mixture.
	hotfire, err := core.Split(in.hotfireTotal(), in.NominalMixtureRatio)
	if err != nil {
		return Result{}, err
	}

	shutdown, err := in.transient(in.Shutdown)
	if err != nil {
		return Result{}, err
	}

	events := []Event{
		{Kind: EventStartup, Phase: PhaseBeforeLiftoff, Mass: startup},
		{Kind: EventChilldown, Phase: PhaseBeforeLiftoff, Mass: chilldown},
		{Kind: EventHotfire, Phase: PhaseBeforeLiftoff, Mass: hotfire},
		{Kind: EventShutdown, Phase: PhaseAfterLiftoff, Mass: shutdown},
		{Kind: EventBoilOff, Phase: PhaseAfterLiftoff, Mass: in.BoilOff},
		{Kind: EventLeakage, Phase: PhaseAfterLiftoff, Mass: in.Leakage},
	}
	return Result{
		Policy:      p.Name(),
		PreLiftoff:  core.Sum(startup, chilldown, hotfire),
		PostLiftoff: core.Sum(shutdown, in.BoilOff, in.Leakage),
		Events:      events,
	}, nil
}
