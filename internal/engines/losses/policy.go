package losses

import (
	"fmt"
)

// IgnitionPolicy computes the propellant expelled before and after liftoff
// for one stage.
type IgnitionPolicy interface {
	// Name identifies the policy in reports and logs.
	Name() string
	// ComputeLosses splits every loss event by species and phase.
	ComputeLosses(in Input) (Result, error)
}

// PolicyKind is an enumeration of the ignition policies.
type PolicyKind int

// enumeration of PolicyKind
const (
	SingleIgnition PolicyKind = iota
	MultiIgnition
)

func (k PolicyKind) String() string {
	switch k {
	case SingleIgnition:
		return "single-ignition"
	case MultiIgnition:
		return "multi-ignition"
	default:
		return fmt.Sprintf("PolicyKind(%d)", int(k))
	}
}

// FuelAccounting selects how the multi-ignition policy sums fuel-side
// transient losses.
type FuelAccounting string

const (
	// FuelAccountingComplete counts chilldown, startup and shutdown fuel.
	FuelAccountingComplete FuelAccounting = "complete"
	// FuelAccountingSourceCompatible reproduces the legacy loss sheet, which
	// leaves startup fuel out of the in-flight fuel total.
	FuelAccountingSourceCompatible FuelAccounting = "sourceCompatible"
)

// PolicyConfig holds configuration shared by the policies.
type PolicyConfig struct {
	MultiIgnitionFuelAccounting FuelAccounting
}

// SelectKind picks the policy for the number of on-pad ignitions per engine.
// One ignition or fewer means the single static fire happens on the pad.
func SelectKind(ignitionsPerEngine int) PolicyKind {
	if ignitionsPerEngine <= 1 {
		return SingleIgnition
	}
	return MultiIgnition
}

// NewPolicy is a factory that creates the IgnitionPolicy for kind.
func NewPolicy(kind PolicyKind, config *PolicyConfig) (IgnitionPolicy, error) {
	switch kind {
	case SingleIgnition:
		return NewSingleIgnitionPolicy(), nil
	case MultiIgnition:
		return NewMultiIgnitionPolicy(config)
	default:
		return nil, fmt.Errorf("unsupported ignition policy: %v", kind)
	}
}

// Account selects the policy for in and computes its losses.
func Account(in Input, config *PolicyConfig) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	policy, err := NewPolicy(SelectKind(in.IgnitionsPerEngine), config)
	if err != nil {
		return Result{}, err
	}
	return policy.ComputeLosses(in)
}
