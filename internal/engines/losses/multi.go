package losses

import (
	"fmt"

	"github.com/vehicle-design/propbudget/pkg/core"
)

// MultiIgnitionPolicy models a stage whose engines are relit in flight and are
// not static-fired on the pad. Nothing is expelled before liftoff; every
// transient happens after it.
type MultiIgnitionPolicy struct {
	fuelAccounting FuelAccounting
}

// NewMultiIgnitionPolicy creates a new MultiIgnitionPolicy. A nil config or an
// empty accounting mode selects FuelAccountingComplete.
func NewMultiIgnitionPolicy(config *PolicyConfig) (*MultiIgnitionPolicy, error) {
	mode := FuelAccountingComplete
	if config != nil && config.MultiIgnitionFuelAccounting != "" {
		mode = config.MultiIgnitionFuelAccounting
	}
	switch mode {
	case FuelAccountingComplete, FuelAccountingSourceCompatible:
	default:
		return nil, fmt.Errorf("unsupported multi-ignition fuel accounting: %q", mode)
	}
	return &MultiIgnitionPolicy{fuelAccounting: mode}, nil
}

func (p *MultiIgnitionPolicy) Name() string { return MultiIgnition.String() }

// FuelAccounting returns the configured fuel accounting mode.
func (p *MultiIgnitionPolicy) FuelAccounting() FuelAccounting { return p.fuelAccounting }

// ComputeLosses implements IgnitionPolicy.
func (p *MultiIgnitionPolicy) ComputeLosses(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	chilldown, err := in.transient(in.Chilldown)
	if err != nil {
		return Result{}, err
	}
	startup, err := in.transient(in.Startup)
	if err != nil {
		return Result{}, err
	}
	shutdown, err := in.transient(in.Shutdown)
	if err != nil {
		return Result{}, err
	}

	if p.fuelAccounting == FuelAccountingSourceCompatible {
		startup.Fuel = 0
	}

	events := []Event{
		{Kind: EventChilldown, Phase: PhaseAfterLiftoff, Mass: chilldown},
		{Kind: EventStartup, Phase: PhaseAfterLiftoff, Mass: startup},
		{Kind: EventShutdown, Phase: PhaseAfterLiftoff, Mass: shutdown},
		{Kind: EventBoilOff, Phase: PhaseAfterLiftoff, Mass: in.BoilOff},
		{Kind: EventLeakage, Phase: PhaseAfterLiftoff, Mass: in.Leakage},
	}
	return Result{
		Policy:      p.Name(),
		PostLiftoff: core.Sum(chilldown, startup, shutdown, in.BoilOff, in.Leakage),
		Events:      events,
	}, nil
}
