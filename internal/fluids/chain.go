package fluids

import (
	"context"
	"errors"
)

// Chain consults each oracle in order and returns the first answer. An oracle
// that does not know the fluid passes the lookup on; any other failure stops
// the chain.
type Chain []Oracle

// Density implements Oracle.
func (c Chain) Density(ctx context.Context, fluid string, temperature, pressure float64) (float64, error) {
	var lastErr error = ErrUnknownFluid
	for _, o := range c {
		rho, err := o.Density(ctx, fluid, temperature, pressure)
		if err == nil {
			return rho, nil
		}
		if !errors.Is(err, ErrUnknownFluid) {
			return 0, err
		}
		lastErr = err
	}
	return 0, lastErr
}
