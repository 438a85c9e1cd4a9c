// Package core provides the value types and primitive operations shared by the
// propellant mass-budget engine.
//
// This package contains the domain models that every other package builds on:
//
//   - Species: the two propellant species tracked per stage (oxidizer and fuel)
//   - Components: an oxidizer/fuel mass pair, the unit of every per-species figure
//   - Split: the mixture splitter dividing a total mass by an O/F ratio
//   - The error taxonomy raised by the sizing and budget components
//
// Example usage:
//
//	// Split the stage burnable mass by the nominal mixture ratio
//	burnable, err := core.Split(59000, 2.3)
//	if err != nil {
//	    return err
//	}
//
//	// burnable.Oxidizer == 41121.2..., burnable.Fuel == 17878.8...
//	scaled := burnable.Scale(2)
//
// The core package is designed to be:
//   - Immutable (value types only, no shared state)
//   - Free of I/O and logging
//   - Independent of configuration loading and reporting
package core
