// Package planner composes the propellant computations into a report.
//
// The planner runs two independent paths over the same vehicle:
//
//	Sizing:      DeltaV budget → Allocation → Stage cascade
//	Mass budget: Loss policy + Residual estimate → Load budget
//
// The paths share no intermediate state; only the Report joins them.
//
// Example usage:
//
//	oracle, err := planner.NewOracle(cfg.Fluids)
//	if err != nil {
//	    return err
//	}
//	p := planner.New(oracle, planner.WithRecorder(metrics))
//
//	report, err := p.Run(ctx, cfg)
//	if budget.IsWarning(err) {
//	    log.Info("load budget went negative", "error", err)
//	} else if err != nil {
//	    return err
//	}
//
// Error Handling:
//
//   - Precondition failures surface as the typed errors of pkg/core and no
//     report is returned
//   - Density lookups are never retried
//   - A negative load figure returns the full report together with the
//     joined *core.NegativeLoadBudgetWarning errors
package planner
