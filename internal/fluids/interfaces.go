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

// Package fluids provides pluggable fluid property lookups for the residual
// estimator.
package fluids

import (
	"context"
)

// Oracle is the interface for fluid property sources.
// Implementations include TabulatedOracle and StaticOracle.
//
// Lookups are deterministic for identical inputs: callers may cache results.
type Oracle interface {
	// Density returns the liquid density in kg/m³ of fluid at the given bulk
	// temperature (K) and tank pressure (Pa).
	// Fluid identifiers follow the CoolProp names (e.g. "Oxygen", "Propane").
	// Failures are reported as *core.DensityLookupError.
	Density(ctx context.Context, fluid string, temperature, pressure float64) (float64, error)
}

// OracleFunc adapts an ordinary function to the Oracle interface.
type OracleFunc func(ctx context.Context, fluid string, temperature, pressure float64) (float64, error)

// Density calls f(ctx, fluid, temperature, pressure).
func (f OracleFunc) Density(ctx context.Context, fluid string, temperature, pressure float64) (float64, error) {
	return f(ctx, fluid, temperature, pressure)
}
