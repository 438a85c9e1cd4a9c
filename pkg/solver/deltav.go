package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vehicle-design/propbudget/pkg/core"
)

var errInvalidBody = errors.New("central body must have positive gravitational parameter and radius")

// Body is the central body the vehicle ascends from.
type Body struct {
	Name string
	// GravitationalParameter is mu in m^3/s^2.
	GravitationalParameter float64
	// Radius is the mean planet radius in m.
	Radius float64
}

// Earth uses the standard gravitational parameter and mean radius.
var Earth = Body{
	Name:                   "Earth",
	GravitationalParameter: 3.986004418e14,
	Radius:                 6371000,
}

// Losses are the fixed delta-v allowances added on top of orbital speed, in m/s.
type Losses struct {
	Gravity  float64 `json:"gravity" yaml:"gravity"`
	Drag     float64 `json:"drag" yaml:"drag"`
	Steering float64 `json:"steering" yaml:"steering"`
}

// DefaultLosses are the approximate allowances used for a small launcher to LEO.
var DefaultLosses = Losses{Gravity: 1400, Drag: 250, Steering: 150}

// Total returns the sum of all loss allowances.
func (l Losses) Total() float64 {
	return l.Gravity + l.Drag + l.Steering
}

func (l Losses) validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"losses.gravity", l.Gravity},
		{"losses.drag", l.Drag},
		{"losses.steering", l.Steering},
	} {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &core.InvalidLossInputError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// VelocityBudget is the mission delta-v requirement: orbital speed plus losses.
type VelocityBudget struct {
	Altitude     float64 `json:"altitude" yaml:"altitude"`
	OrbitalSpeed float64 `json:"orbitalSpeed" yaml:"orbitalSpeed"`
	Losses       Losses  `json:"losses" yaml:"losses"`
}

// Total returns orbital speed plus all loss allowances.
func (v VelocityBudget) Total() float64 {
	return v.OrbitalSpeed + v.Losses.Total()
}

// OrbitalSpeed returns the circular orbit speed sqrt(mu / (R + h)) at altitude
// h above the body's mean radius.
func OrbitalSpeed(body Body, altitude float64) (float64, error) {
	if !(body.GravitationalParameter > 0) || !(body.Radius > 0) {
		return 0, errInvalidBody
	}
	r := body.Radius + altitude
	if !(r > 0) || math.IsInf(r, 0) {
		return 0, &core.InvalidAltitudeError{Altitude: altitude, PlanetRadius: body.Radius}
	}
	return math.Sqrt(body.GravitationalParameter / r), nil
}

// NewVelocityBudget computes the velocity budget for a circular orbit at altitude.
func NewVelocityBudget(body Body, altitude float64, losses Losses) (VelocityBudget, error) {
	if err := losses.validate(); err != nil {
		return VelocityBudget{}, err
	}
	v, err := OrbitalSpeed(body, altitude)
	if err != nil {
		return VelocityBudget{}, err
	}
	return VelocityBudget{
		Altitude:     altitude,
		OrbitalSpeed: v,
		Losses:       losses,
	}, nil
}

// TotalDeltaV is a convenience for NewVelocityBudget(...).Total().
func TotalDeltaV(body Body, altitude float64, losses Losses) (float64, error) {
	b, err := NewVelocityBudget(body, altitude, losses)
	if err != nil {
		return 0, err
	}
	return b.Total(), nil
}

// Allocate splits total across stages by fraction. It is a pure multiplicative
// split: fractions are not required to sum to one. Callers that need that
// guarantee should check FractionsSum first.
func Allocate(total float64, fractions []float64) []float64 {
	out := make([]float64, len(fractions))
	floats.ScaleTo(out, total, fractions)
	return out
}

// FractionsSum returns the sum of the stage fractions.
func FractionsSum(fractions []float64) float64 {
	return floats.Sum(fractions)
}
