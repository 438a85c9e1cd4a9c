package config

import (
	"fmt"
	"math"
)

// Multi-ignition fuel accounting modes.
const (
	FuelAccountingComplete         = "complete"
	FuelAccountingSourceCompatible = "sourceCompatible"
)

// VehicleConfig is the complete description of one vehicle and mission.
type VehicleConfig struct {
	Name   string       `yaml:"name" json:"name" mapstructure:"name"`
	Sizing SizingConfig `yaml:"sizing" json:"sizing" mapstructure:"sizing"`
	Budget BudgetConfig `yaml:"budget" json:"budget" mapstructure:"budget"`
	Fluids FluidsConfig `yaml:"fluids" json:"fluids" mapstructure:"fluids"`
}

// SizingConfig holds the inputs of the delta-v sizing path.
type SizingConfig struct {
	// Altitude of the target circular orbit in m.
	Altitude float64 `yaml:"altitude" json:"altitude" mapstructure:"altitude"`
	// PayloadMass carried by the top stage in kg.
	PayloadMass float64 `yaml:"payloadMass" json:"payloadMass" mapstructure:"payloadMass"`
	// Losses are the delta-v allowances added to the orbital speed.
	Losses LossAllowances `yaml:"losses" json:"losses" mapstructure:"losses"`
	// Stages in firing order; the first entry is stage 1.
	Stages []StageConfig `yaml:"stages" json:"stages" mapstructure:"stages"`
}

// LossAllowances in m/s.
type LossAllowances struct {
	Gravity  float64 `yaml:"gravity" json:"gravity" mapstructure:"gravity"`
	Drag     float64 `yaml:"drag" json:"drag" mapstructure:"drag"`
	Steering float64 `yaml:"steering" json:"steering" mapstructure:"steering"`
}

// StageConfig describes one stage for sizing.
type StageConfig struct {
	Name string `yaml:"name" json:"name" mapstructure:"name"`
	// Fraction of the total delta-v assigned to this stage.
	Fraction float64 `yaml:"fraction" json:"fraction" mapstructure:"fraction"`
	// SpecificImpulse in s.
	SpecificImpulse float64 `yaml:"specificImpulse" json:"specificImpulse" mapstructure:"specificImpulse"`
	// DryMass in kg.
	DryMass float64 `yaml:"dryMass" json:"dryMass" mapstructure:"dryMass"`
}

// BudgetConfig holds the inputs of the mass-budget path for one stage.
type BudgetConfig struct {
	Stage               string  `yaml:"stage" json:"stage" mapstructure:"stage"`
	NominalMixtureRatio float64 `yaml:"nominalMixtureRatio" json:"nominalMixtureRatio" mapstructure:"nominalMixtureRatio"`
	// BurnableMass is the total burnable propellant in kg.
	BurnableMass float64 `yaml:"burnableMass" json:"burnableMass" mapstructure:"burnableMass"`
	// ResidualTarget is the residual mass in kg the stage was designed for.
	ResidualTarget float64 `yaml:"residualTarget" json:"residualTarget" mapstructure:"residualTarget"`
	// Reserve is the performance reserve in kg.
	Reserve float64 `yaml:"reserve" json:"reserve" mapstructure:"reserve"`

	Oxidizer   TankConfig       `yaml:"oxidizer" json:"oxidizer" mapstructure:"oxidizer"`
	Fuel       TankConfig       `yaml:"fuel" json:"fuel" mapstructure:"fuel"`
	Engines    EngineConfig     `yaml:"engines" json:"engines" mapstructure:"engines"`
	Transients TransientsConfig `yaml:"transients" json:"transients" mapstructure:"transients"`

	// MultiIgnitionFuelAccounting is "complete" or "sourceCompatible".
	MultiIgnitionFuelAccounting string `yaml:"multiIgnitionFuelAccounting" json:"multiIgnitionFuelAccounting" mapstructure:"multiIgnitionFuelAccounting"`
}

// TankConfig holds the per-species tank state and loss magnitudes.
type TankConfig struct {
	// Fluid is the density oracle identifier (CoolProp naming).
	Fluid string `yaml:"fluid" json:"fluid" mapstructure:"fluid"`
	// Temperature in K.
	Temperature float64 `yaml:"temperature" json:"temperature" mapstructure:"temperature"`
	// Pressure in Pa.
	Pressure float64 `yaml:"pressure" json:"pressure" mapstructure:"pressure"`
	// UnusableVolume in L.
	UnusableVolume float64 `yaml:"unusableVolume" json:"unusableVolume" mapstructure:"unusableVolume"`
	// BoilOff, Leakage and TopOff in kg.
	BoilOff float64 `yaml:"boilOff" json:"boilOff" mapstructure:"boilOff"`
	Leakage float64 `yaml:"leakage" json:"leakage" mapstructure:"leakage"`
	TopOff  float64 `yaml:"topOff" json:"topOff" mapstructure:"topOff"`
}

// EngineConfig describes the engine cluster of the budgeted stage.
type EngineConfig struct {
	Count              int           `yaml:"count" json:"count" mapstructure:"count"`
	IgnitionsPerEngine int           `yaml:"ignitionsPerEngine" json:"ignitionsPerEngine" mapstructure:"ignitionsPerEngine"`
	Hotfire            HotfireConfig `yaml:"hotfire" json:"hotfire" mapstructure:"hotfire"`
}

// HotfireConfig describes the on-pad static fire.
type HotfireConfig struct {
	// Duration per engine per ignition in s.
	Duration float64 `yaml:"duration" json:"duration" mapstructure:"duration"`
	// MassFlowRate per engine in kg/s.
	MassFlowRate float64 `yaml:"massFlowRate" json:"massFlowRate" mapstructure:"massFlowRate"`
}

// TransientsConfig holds the per-engine per-ignition transient losses.
type TransientsConfig struct {
	Startup   TransientConfig `yaml:"startup" json:"startup" mapstructure:"startup"`
	Chilldown TransientConfig `yaml:"chilldown" json:"chilldown" mapstructure:"chilldown"`
	Shutdown  TransientConfig `yaml:"shutdown" json:"shutdown" mapstructure:"shutdown"`
}

// TransientConfig is the total loss in kg and O/F of one transient.
type TransientConfig struct {
	TotalLoss    float64 `yaml:"totalLoss" json:"totalLoss" mapstructure:"totalLoss"`
	MixtureRatio float64 `yaml:"mixtureRatio" json:"mixtureRatio" mapstructure:"mixtureRatio"`
}

// FluidsConfig customises the density oracle.
type FluidsConfig struct {
	// TablesFile is an optional YAML file with extra density tables.
	TablesFile string `yaml:"tablesFile" json:"tablesFile,omitempty" mapstructure:"tablesFile"`
	// Pinned densities take precedence over the tables.
	Pinned []PinnedDensity `yaml:"pinned,omitempty" json:"pinned,omitempty" mapstructure:"pinned"`
}

// PinnedDensity fixes the density of one fluid regardless of its state.
type PinnedDensity struct {
	Fluid string `yaml:"fluid" json:"fluid" mapstructure:"fluid"`
	// Density in kg/m³.
	Density float64 `yaml:"density" json:"density" mapstructure:"density"`
}

// Validate checks for invalid configuration values.
func (c *VehicleConfig) Validate() error {
	if len(c.Sizing.Stages) == 0 {
		return fmt.Errorf("sizing.stages must define at least one stage")
	}
	seen := make(map[string]bool, len(c.Sizing.Stages))
	for i, s := range c.Sizing.Stages {
		if s.Name == "" {
			return fmt.Errorf("sizing.stages[%d].name must not be empty", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate stage name %q", s.Name)
		}
		seen[s.Name] = true
		if math.IsNaN(s.Fraction) || s.Fraction < 0 || s.Fraction > 1 {
			return fmt.Errorf("sizing.stages[%d].fraction must be between 0 and 1, got %g", i, s.Fraction)
		}
	}
	if c.Budget.Stage != "" && !seen[c.Budget.Stage] {
		return fmt.Errorf("budget.stage %q does not name a sizing stage", c.Budget.Stage)
	}
	switch c.Budget.MultiIgnitionFuelAccounting {
	case "", FuelAccountingComplete, FuelAccountingSourceCompatible:
	default:
		return fmt.Errorf("budget.multiIgnitionFuelAccounting must be %q or %q, got %q",
			FuelAccountingComplete, FuelAccountingSourceCompatible, c.Budget.MultiIgnitionFuelAccounting)
	}
	if c.Budget.Oxidizer.Fluid == "" || c.Budget.Fuel.Fluid == "" {
		return fmt.Errorf("budget.oxidizer.fluid and budget.fuel.fluid are required")
	}
	for i, p := range c.Fluids.Pinned {
		if p.Fluid == "" {
			return fmt.Errorf("fluids.pinned[%d].fluid must not be empty", i)
		}
		if !(p.Density > 0) || math.IsInf(p.Density, 0) {
			return fmt.Errorf("fluids.pinned[%d].density must be > 0, got %g", i, p.Density)
		}
	}
	return nil
}

// Fractions returns the delta-v fraction of every stage in firing order.
func (c SizingConfig) Fractions() []float64 {
	out := make([]float64, len(c.Stages))
	for i, s := range c.Stages {
		out[i] = s.Fraction
	}
	return out
}

// DeepCopy returns a copy that shares no slices or maps with c.
func (c VehicleConfig) DeepCopy() VehicleConfig {
	out := c
	out.Sizing.Stages = append([]StageConfig(nil), c.Sizing.Stages...)
	if c.Fluids.Pinned != nil {
		out.Fluids.Pinned = append([]PinnedDensity(nil), c.Fluids.Pinned...)
	}
	return out
}
