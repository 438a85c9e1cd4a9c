package planner

import (
	"github.com/vehicle-design/propbudget/internal/budget"
	"github.com/vehicle-design/propbudget/internal/engines/losses"
	"github.com/vehicle-design/propbudget/internal/residuals"
	"github.com/vehicle-design/propbudget/pkg/core"
	"github.com/vehicle-design/propbudget/pkg/solver"
)

// Report is the outcome of one run.
type Report struct {
	Vehicle string        `json:"vehicle" yaml:"vehicle"`
	Sizing  *SizingReport `json:"sizing,omitempty" yaml:"sizing,omitempty"`
	Budget  *BudgetReport `json:"budget,omitempty" yaml:"budget,omitempty"`
}

// SizingReport is the outcome of the sizing path.
type SizingReport struct {
	Velocity     solver.VelocityBudget      `json:"velocity" yaml:"velocity"`
	TotalDeltaV  float64                    `json:"totalDeltaV" yaml:"totalDeltaV"`
	FractionsSum float64                    `json:"fractionsSum" yaml:"fractionsSum"`
	Stages       []solver.StageSizingResult `json:"stages" yaml:"stages"`
	// LiftoffMass is the wet mass of the first stage.
	LiftoffMass float64 `json:"liftoffMass" yaml:"liftoffMass"`
}

// BudgetReport is the outcome of the mass-budget path for one stage.
type BudgetReport struct {
	Stage          string            `json:"stage" yaml:"stage"`
	Policy         string            `json:"policy" yaml:"policy"`
	FuelAccounting string            `json:"fuelAccounting,omitempty" yaml:"fuelAccounting,omitempty"`
	Burnable       core.Components   `json:"burnable" yaml:"burnable"`
	Residuals      residuals.Budget  `json:"residuals" yaml:"residuals"`
	ResidualTarget float64           `json:"residualTarget" yaml:"residualTarget"`
	ResidualMargin float64           `json:"residualMargin" yaml:"residualMargin"`
	Losses         losses.Result     `json:"losses" yaml:"losses"`
	Load           budget.LoadBudget `json:"load" yaml:"load"`
	Totals         Totals            `json:"totals" yaml:"totals"`
	// Warnings lists the negative load figures, if any.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Totals are the stage-level sums over both species.
type Totals struct {
	Residuals    float64 `json:"residuals" yaml:"residuals"`
	PreLiftoff   float64 `json:"preLiftoff" yaml:"preLiftoff"`
	PostLiftoff  float64 `json:"postLiftoff" yaml:"postLiftoff"`
	Liftoff      float64 `json:"liftoff" yaml:"liftoff"`
	Autosequence float64 `json:"autosequence" yaml:"autosequence"`
}

func totalsOf(r *BudgetReport) Totals {
	return Totals{
		Residuals:    r.Residuals.Residuals().Total(),
		PreLiftoff:   r.Losses.PreLiftoff.Total(),
		PostLiftoff:  r.Losses.PostLiftoff.Total(),
		Liftoff:      r.Load.Liftoff.Total(),
		Autosequence: r.Load.Autosequence.Total(),
	}
}
