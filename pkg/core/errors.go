/*
Copyright 2026 The propbudget Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. Each typed error below reports itself as
// its sentinel, so callers can branch on the kind without errors.As.
var (
	ErrInvalidRatio       = errors.New("invalid mixture ratio")
	ErrInvalidMass        = errors.New("invalid mass")
	ErrInvalidAltitude    = errors.New("invalid altitude")
	ErrNonPhysicalSizing  = errors.New("non-physical stage sizing")
	ErrDensityLookup      = errors.New("density lookup failed")
	ErrInvalidLossInput   = errors.New("invalid loss input")
	ErrNegativeLoadBudget = errors.New("negative load budget")
)

// InvalidRatioError is returned when a mixture ratio is not strictly positive.
type InvalidRatioError struct {
	// Name identifies which ratio was rejected (e.g. "startup"); may be empty.
	Name  string
	Ratio float64
}

func (e *InvalidRatioError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid mixture ratio for %s: must be > 0, got %g", e.Name, e.Ratio)
	}
	return fmt.Sprintf("invalid mixture ratio: must be > 0, got %g", e.Ratio)
}

func (e *InvalidRatioError) Is(target error) bool { return target == ErrInvalidRatio }

// InvalidMassError is returned when a mass argument is negative or not finite.
type InvalidMassError struct {
	Field string
	Value float64
}

func (e *InvalidMassError) Error() string {
	return fmt.Sprintf("invalid mass %s: must be finite and >= 0, got %g", e.Field, e.Value)
}

func (e *InvalidMassError) Is(target error) bool { return target == ErrInvalidMass }

// InvalidAltitudeError is returned when the orbital radius planetRadius+altitude
// is not positive.
type InvalidAltitudeError struct {
	Altitude     float64
	PlanetRadius float64
}

func (e *InvalidAltitudeError) Error() string {
	return fmt.Sprintf("invalid altitude %g m: orbital radius %g m must be > 0",
		e.Altitude, e.PlanetRadius+e.Altitude)
}

func (e *InvalidAltitudeError) Is(target error) bool { return target == ErrInvalidAltitude }

// NonPhysicalSizingError is returned when stage inputs violate a precondition or
// produce an infeasible (negative or non-finite) propellant mass.
type NonPhysicalSizingError struct {
	Stage  string
	Reason string
}

func (e *NonPhysicalSizingError) Error() string {
	return fmt.Sprintf("non-physical sizing for stage %q: %s", e.Stage, e.Reason)
}

func (e *NonPhysicalSizingError) Is(target error) bool { return target == ErrNonPhysicalSizing }

// DensityLookupError wraps a failure of the fluid property oracle. The
// underlying cause is available through errors.Unwrap.
type DensityLookupError struct {
	Fluid       string
	Temperature float64
	Pressure    float64
	Err         error
}

func (e *DensityLookupError) Error() string {
	return fmt.Sprintf("density lookup for %s at T=%g K, P=%g Pa: %v",
		e.Fluid, e.Temperature, e.Pressure, e.Err)
}

func (e *DensityLookupError) Is(target error) bool { return target == ErrDensityLookup }

func (e *DensityLookupError) Unwrap() error { return e.Err }

// InvalidLossInputError is returned when a loss magnitude or count is negative,
// or when a scaled loss total is not finite.
type InvalidLossInputError struct {
	Field string
	Value float64
}

func (e *InvalidLossInputError) Error() string {
	return fmt.Sprintf("invalid loss input %s: must be finite and >= 0, got %g", e.Field, e.Value)
}

func (e *InvalidLossInputError) Is(target error) bool { return target == ErrInvalidLossInput }

// NegativeLoadBudgetWarning reports a load figure that came out negative,
// typically because top-off exceeds everything it is meant to replenish.
// The figure is reported as computed and never floored.
type NegativeLoadBudgetWarning struct {
	Species Species
	// Figure names the load figure ("liftoff" or "autosequence").
	Figure string
	Mass   float64
}

func (e *NegativeLoadBudgetWarning) Error() string {
	return fmt.Sprintf("negative %s load budget for %s: %g kg", e.Figure, e.Species, e.Mass)
}

func (e *NegativeLoadBudgetWarning) Is(target error) bool { return target == ErrNegativeLoadBudget }

// Kind returns a short, stable label for the error's category, suitable for
// metric labels. Unknown errors map to "other".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRatio):
		return "invalid_ratio"
	case errors.Is(err, ErrInvalidMass):
		return "invalid_mass"
	case errors.Is(err, ErrInvalidAltitude):
		return "invalid_altitude"
	case errors.Is(err, ErrNonPhysicalSizing):
		return "non_physical_sizing"
	case errors.Is(err, ErrDensityLookup):
		return "density_lookup"
	case errors.Is(err, ErrInvalidLossInput):
		return "invalid_loss_input"
	case errors.Is(err, ErrNegativeLoadBudget):
		return "negative_load_budget"
	default:
		return "other"
	}
}
