package config

// Default vehicle constants. The figures are planning placeholders for a
// two-stage LOX/propane launcher.
const (
	DefaultAltitude    = 200_000.0
	DefaultPayloadMass = 1000.0

	DefaultGravityLoss  = 1400.0
	DefaultDragLoss     = 250.0
	DefaultSteeringLoss = 150.0

	DefaultStage1Fraction = 0.42
	DefaultStage2Fraction = 0.58
	DefaultStage1Isp      = 265.0
	DefaultStage2Isp      = 310.0
	DefaultStage1DryMass  = 3900.0
	DefaultStage2DryMass  = 900.0

	DefaultTankPressure = 3.0e5
)

// DefaultVehicleConfig returns the reference vehicle. Every call returns a
// fresh value.
func DefaultVehicleConfig() VehicleConfig {
	return VehicleConfig{
		Name: "reference",
		Sizing: SizingConfig{
			Altitude:    DefaultAltitude,
			PayloadMass: DefaultPayloadMass,
			Losses: LossAllowances{
				Gravity:  DefaultGravityLoss,
				Drag:     DefaultDragLoss,
				Steering: DefaultSteeringLoss,
			},
			Stages: []StageConfig{
				{Name: "S1", Fraction: DefaultStage1Fraction, SpecificImpulse: DefaultStage1Isp, DryMass: DefaultStage1DryMass},
				{Name: "S2", Fraction: DefaultStage2Fraction, SpecificImpulse: DefaultStage2Isp, DryMass: DefaultStage2DryMass},
			},
		},
		Budget: BudgetConfig{
			Stage:               "S1",
			NominalMixtureRatio: 2.3,
			BurnableMass:        59000,
			ResidualTarget:      300,
			Reserve:             100,
			Oxidizer: TankConfig{
				Fluid:          "Oxygen",
				Temperature:    93,
				Pressure:       DefaultTankPressure,
				UnusableVolume: 30,
				BoilOff:        18,
				Leakage:        1,
				TopOff:         20,
			},
			Fuel: TankConfig{
				Fluid:          "Propane",
				Temperature:    109,
				Pressure:       DefaultTankPressure,
				UnusableVolume: 29,
				BoilOff:        10,
				Leakage:        1,
				TopOff:         20,
			},
			Engines: EngineConfig{
				Count:              12,
				IgnitionsPerEngine: 1,
				Hotfire:            HotfireConfig{Duration: 1.5, MassFlowRate: 28},
			},
			Transients: TransientsConfig{
				Startup:   TransientConfig{TotalLoss: 10, MixtureRatio: 1},
				Chilldown: TransientConfig{TotalLoss: 7, MixtureRatio: 7},
				Shutdown:  TransientConfig{TotalLoss: 3, MixtureRatio: 2},
			},
			MultiIgnitionFuelAccounting: FuelAccountingComplete,
		},
	}
}
