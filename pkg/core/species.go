package core

import "fmt"

// Species identifies one of the two propellants of a bipropellant stage.
type Species string

const (
	// Oxidizer is the oxidizer species (e.g. liquid oxygen).
	Oxidizer Species = "oxidizer"
	// Fuel is the fuel species (e.g. liquid propane).
	Fuel Species = "fuel"
)

// AllSpecies lists the species in reporting order.
var AllSpecies = []Species{Oxidizer, Fuel}

// Components is a per-species mass pair in kilograms.
type Components struct {
	Oxidizer float64 `json:"oxidizer" yaml:"oxidizer"`
	Fuel     float64 `json:"fuel" yaml:"fuel"`
}

// Total returns the combined mass of both species.
func (c Components) Total() float64 {
	return c.Oxidizer + c.Fuel
}

// Add returns the species-wise sum of c and o.
func (c Components) Add(o Components) Components {
	return Components{
		Oxidizer: c.Oxidizer + o.Oxidizer,
		Fuel:     c.Fuel + o.Fuel,
	}
}

// Sub returns the species-wise difference c - o.
func (c Components) Sub(o Components) Components {
	return Components{
		Oxidizer: c.Oxidizer - o.Oxidizer,
		Fuel:     c.Fuel - o.Fuel,
	}
}

// Scale multiplies both species by factor.
func (c Components) Scale(factor float64) Components {
	return Components{
		Oxidizer: c.Oxidizer * factor,
		Fuel:     c.Fuel * factor,
	}
}

// Get returns the mass of the given species.
func (c Components) Get(s Species) float64 {
	switch s {
	case Oxidizer:
		return c.Oxidizer
	case Fuel:
		return c.Fuel
	default:
		panic(fmt.Sprintf("unknown species %q", s))
	}
}

// Sum adds any number of component pairs.
func Sum(parts ...Components) Components {
	var out Components
	for _, p := range parts {
		out = out.Add(p)
	}
	return out
}
