package config

// Overrides are optional per-run changes. A nil field inherits the value of
// the configuration it is applied to.
type Overrides struct {
	PayloadMass        *float64 `yaml:"payloadMass,omitempty" json:"payloadMass,omitempty"`
	Altitude           *float64 `yaml:"altitude,omitempty" json:"altitude,omitempty"`
	Stage1Isp          *float64 `yaml:"stage1Isp,omitempty" json:"stage1Isp,omitempty"`
	IgnitionsPerEngine *int     `yaml:"ignitionsPerEngine,omitempty" json:"ignitionsPerEngine,omitempty"`
	BurnableMass       *float64 `yaml:"burnableMass,omitempty" json:"burnableMass,omitempty"`
	FuelAccounting     *string  `yaml:"fuelAccounting,omitempty" json:"fuelAccounting,omitempty"`
}

// IsEmpty reports whether no override is set.
func (o Overrides) IsEmpty() bool {
	return o == Overrides{}
}

// Apply returns a copy of c with every set override applied.
func (o Overrides) Apply(c VehicleConfig) VehicleConfig {
	result := c.DeepCopy()

	if o.PayloadMass != nil {
		result.Sizing.PayloadMass = *o.PayloadMass
	}
	if o.Altitude != nil {
		result.Sizing.Altitude = *o.Altitude
	}
	if o.Stage1Isp != nil && len(result.Sizing.Stages) > 0 {
		result.Sizing.Stages[0].SpecificImpulse = *o.Stage1Isp
	}
	if o.IgnitionsPerEngine != nil {
		result.Budget.Engines.IgnitionsPerEngine = *o.IgnitionsPerEngine
	}
	if o.BurnableMass != nil {
		result.Budget.BurnableMass = *o.BurnableMass
	}
	if o.FuelAccounting != nil {
		result.Budget.MultiIgnitionFuelAccounting = *o.FuelAccounting
	}

	return result
}
