package solver

import (
	"fmt"
	"math"

	"github.com/vehicle-design/propbudget/pkg/core"
)

// StandardGravity is g0 used to convert specific impulse to exhaust velocity.
const StandardGravity = 9.81

// StageInput describes one stage to be sized.
type StageInput struct {
	Name string `json:"name" yaml:"name"`
	// DeltaV is the velocity increment assigned to the stage, in m/s.
	DeltaV float64 `json:"deltaV" yaml:"deltaV"`
	// SpecificImpulse in seconds.
	SpecificImpulse float64 `json:"specificImpulse" yaml:"specificImpulse"`
	// DryMass is the fixed structural mass in kg.
	DryMass float64 `json:"dryMass" yaml:"dryMass"`
}

// StageSizingResult holds the sizing outcome for one stage.
type StageSizingResult struct {
	Name            string  `json:"name" yaml:"name"`
	DeltaV          float64 `json:"deltaV" yaml:"deltaV"`
	SpecificImpulse float64 `json:"specificImpulse" yaml:"specificImpulse"`
	MassRatio       float64 `json:"massRatio" yaml:"massRatio"`
	DryMass         float64 `json:"dryMass" yaml:"dryMass"`
	PayloadMass     float64 `json:"payloadMass" yaml:"payloadMass"`
	WetMass         float64 `json:"wetMass" yaml:"wetMass"`
	PropellantMass  float64 `json:"propellantMass" yaml:"propellantMass"`
}

func (in StageInput) validate(payloadMass float64) error {
	nonPhysical := func(format string, args ...any) error {
		return &core.NonPhysicalSizingError{Stage: in.Name, Reason: fmt.Sprintf(format, args...)}
	}
	switch {
	case !(in.SpecificImpulse > 0) || math.IsInf(in.SpecificImpulse, 0):
		return nonPhysical("specific impulse must be > 0, got %g s", in.SpecificImpulse)
	case !(in.DeltaV >= 0) || math.IsInf(in.DeltaV, 0):
		return nonPhysical("delta-v must be >= 0, got %g m/s", in.DeltaV)
	case !(in.DryMass >= 0) || math.IsInf(in.DryMass, 0):
		return nonPhysical("dry mass must be >= 0, got %g kg", in.DryMass)
	case !(payloadMass >= 0) || math.IsInf(payloadMass, 0):
		return nonPhysical("payload mass must be >= 0, got %g kg", payloadMass)
	}
	return nil
}

// SizeStage sizes a single stage carrying payloadMass with the rocket equation:
//
//	MR = exp(dv / (g0 * Isp)), wet = MR * (payload + dry), propellant = wet - payload - dry
func SizeStage(in StageInput, payloadMass float64) (StageSizingResult, error) {
	if err := in.validate(payloadMass); err != nil {
		return StageSizingResult{}, err
	}
	return sizeValidated(in, payloadMass)
}

func sizeValidated(in StageInput, payloadMass float64) (StageSizingResult, error) {
	mr := math.Exp(in.DeltaV / (StandardGravity * in.SpecificImpulse))
	wet := mr * (payloadMass + in.DryMass)
	prop := wet - payloadMass - in.DryMass
	if math.IsInf(wet, 0) || math.IsNaN(prop) || prop < 0 {
		return StageSizingResult{}, &core.NonPhysicalSizingError{
			Stage:  in.Name,
			Reason: fmt.Sprintf("infeasible propellant mass %g kg (mass ratio %g)", prop, mr),
		}
	}
	return StageSizingResult{
		Name:            in.Name,
		DeltaV:          in.DeltaV,
		SpecificImpulse: in.SpecificImpulse,
		MassRatio:       mr,
		DryMass:         in.DryMass,
		PayloadMass:     payloadMass,
		WetMass:         wet,
		PropellantMass:  prop,
	}, nil
}

// Cascade sizes a vehicle whose stages are given in firing order (first stage
// first). The last stage carries payloadMass; every other stage carries the
// wet mass of the stage above it. Results are returned in firing order.
//
// All stage inputs are validated before any sizing is done, and no results are
// returned if any stage fails.
func Cascade(payloadMass float64, stages []StageInput) ([]StageSizingResult, error) {
	if len(stages) == 0 {
		return nil, &core.NonPhysicalSizingError{Stage: "", Reason: "vehicle has no stages"}
	}
	top := len(stages) - 1
	for i, s := range stages {
		// Lower stages carry a wet mass, which cannot be negative once the
		// stages above them pass validation.
		var payload float64
		if i == top {
			payload = payloadMass
		}
		if err := s.validate(payload); err != nil {
			return nil, err
		}
	}

	results := make([]StageSizingResult, len(stages))
	carried := payloadMass
	for i := top; i >= 0; i-- {
		r, err := sizeValidated(stages[i], carried)
		if err != nil {
			return nil, err
		}
		results[i] = r
		carried = r.WetMass
	}
	return results, nil
}

// LiftoffMass returns the wet mass of the first stage, i.e. the whole vehicle.
func LiftoffMass(results []StageSizingResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return results[0].WetMass
}
