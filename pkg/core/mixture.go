package core

import "math"

// Split divides totalMass into oxidizer and fuel using the mixture ratio
// (oxidizer mass over fuel mass).
//
// The fuel share is computed as the remainder so that the two components
// always add back to totalMass.
func Split(totalMass, mixtureRatio float64) (Components, error) {
	if !(mixtureRatio > 0) || math.IsInf(mixtureRatio, 0) {
		return Components{}, &InvalidRatioError{Ratio: mixtureRatio}
	}
	if totalMass < 0 || math.IsNaN(totalMass) || math.IsInf(totalMass, 0) {
		return Components{}, &InvalidMassError{Field: "totalMass", Value: totalMass}
	}
	ox := totalMass * mixtureRatio / (1 + mixtureRatio)
	return Components{
		Oxidizer: ox,
		Fuel:     totalMass - ox,
	}, nil
}
