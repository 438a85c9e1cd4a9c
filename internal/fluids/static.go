package fluids

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/vehicle-design/propbudget/pkg/core"
)

// ErrUnknownFluid is wrapped by lookups for fluids an oracle does not know.
var ErrUnknownFluid = errors.New("unknown fluid")

// StaticOracle returns a fixed density per fluid regardless of the thermodynamic
// state. It backs tests and configurations that pin densities.
type StaticOracle map[string]float64

// Density implements Oracle.
func (s StaticOracle) Density(ctx context.Context, fluid string, temperature, pressure float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &core.DensityLookupError{Fluid: fluid, Temperature: temperature, Pressure: pressure, Err: err}
	}
	rho, ok := s[fluid]
	if !ok {
		return 0, &core.DensityLookupError{Fluid: fluid, Temperature: temperature, Pressure: pressure, Err: ErrUnknownFluid}
	}
	if !(rho > 0) || math.IsInf(rho, 0) {
		return 0, &core.DensityLookupError{
			Fluid: fluid, Temperature: temperature, Pressure: pressure,
			Err: fmt.Errorf("pinned density %g is not positive", rho),
		}
	}
	return rho, nil
}
