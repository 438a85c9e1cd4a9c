// Package budget aggregates burnable propellant and losses into the masses
// that must be on board at liftoff and loaded at autosequence start.
package budget

import (
	"errors"

	"github.com/vehicle-design/propbudget/pkg/core"
)

// Figure names for NegativeLoadBudgetWarning.
const (
	FigureLiftoff      = "liftoff"
	FigureAutosequence = "autosequence"
)

// Input carries per-species masses in kg.
type Input struct {
	Burnable    core.Components
	PreLiftoff  core.Components
	PostLiftoff core.Components
	TopOff      core.Components
}

// LoadBudget is the per-species load plan of one stage.
type LoadBudget struct {
	// Liftoff is burnable plus everything expelled after liftoff.
	Liftoff core.Components `json:"liftoff" yaml:"liftoff"`
	// Autosequence is the liftoff load plus everything expelled before
	// liftoff, less what top-off replenishes during the count.
	Autosequence core.Components `json:"autosequence" yaml:"autosequence"`
}

// Aggregate computes the load budget. Figures are never clamped: when one
// comes out negative the full budget is returned together with a
// *core.NegativeLoadBudgetWarning per offending figure, joined.
func Aggregate(in Input) (LoadBudget, error) {
	liftoff := in.Burnable.Add(in.PostLiftoff)
	b := LoadBudget{
		Liftoff:      liftoff,
		Autosequence: liftoff.Add(in.PreLiftoff).Sub(in.TopOff),
	}

	var warnings []error
	for _, s := range core.AllSpecies {
		if m := b.Liftoff.Get(s); m < 0 {
			warnings = append(warnings, &core.NegativeLoadBudgetWarning{Species: s, Figure: FigureLiftoff, Mass: m})
		}
		if m := b.Autosequence.Get(s); m < 0 {
			warnings = append(warnings, &core.NegativeLoadBudgetWarning{Species: s, Figure: FigureAutosequence, Mass: m})
		}
	}
	return b, errors.Join(warnings...)
}

// IsWarning reports whether err only carries negative load budget warnings,
// in which case the accompanying LoadBudget is still meaningful.
func IsWarning(err error) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !IsWarning(e) {
				return false
			}
		}
		return true
	}
	var w *core.NegativeLoadBudgetWarning
	return errors.As(err, &w)
}
