// Package solver implements the launch-vehicle sizing algorithms.
//
// The solver package turns a mission velocity requirement into per-stage mass
// figures using the ideal rocket equation.
//
// Key Components:
//
//   - VelocityBudget: orbital speed at the target altitude plus fixed loss allowances
//   - Allocate: fractional split of the total delta-v across stages
//   - SizeStage: rocket-equation sizing of a single stage
//   - Cascade: top-down sizing where each stage's wet mass is the payload of the stage below
//
// Sizing Strategy:
//
//  1. Compute orbital speed sqrt(mu / (R + h)) for the target body and altitude
//  2. Add gravity, drag and steering loss allowances to get the total delta-v
//  3. Allocate the total to stages by their configured fractions
//  4. Size the top stage against the mission payload, then cascade downward
//
// Example usage:
//
//	budget, err := solver.NewVelocityBudget(solver.Earth, 200e3, solver.DefaultLosses)
//	if err != nil {
//	    return err
//	}
//	dv := solver.Allocate(budget.Total(), []float64{0.42, 0.58})
//
//	results, err := solver.Cascade(1000, []solver.StageInput{
//	    {Name: "S1", DeltaV: dv[0], SpecificImpulse: 265, DryMass: 3900},
//	    {Name: "S2", DeltaV: dv[1], SpecificImpulse: 310, DryMass: 900},
//	})
//
// The solver is designed to be:
//   - Deterministic: same inputs produce bit-identical outputs
//   - Strict: preconditions are checked before any arithmetic, nothing is clamped
//   - Stateless: safe for concurrent use across independent trade-study runs
package solver
