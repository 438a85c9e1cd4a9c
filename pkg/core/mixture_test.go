package core

import (
	"errors"
	"math"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		ratio    float64
		wantOx   float64
		wantFuel float64
	}{
		{
			name:     "stage burnable mass at nominal mixture",
			total:    59000,
			ratio:    2.3,
			wantOx:   41121.2,
			wantFuel: 17878.8,
		},
		{
			name:     "reserve mass at nominal mixture",
			total:    100,
			ratio:    2.3,
			wantOx:   69.7,
			wantFuel: 30.3,
		},
		{
			name:     "unity mixture splits evenly",
			total:    10,
			ratio:    1,
			wantOx:   5,
			wantFuel: 5,
		},
		{
			name:     "zero mass",
			total:    0,
			ratio:    7,
			wantOx:   0,
			wantFuel: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.total, tt.ratio)
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			if round1(got.Oxidizer) != tt.wantOx {
				t.Errorf("Split() oxidizer = %v, want %v", got.Oxidizer, tt.wantOx)
			}
			if round1(got.Fuel) != tt.wantFuel {
				t.Errorf("Split() fuel = %v, want %v", got.Fuel, tt.wantFuel)
			}
		})
	}
}

func TestSplitConservesMass(t *testing.T) {
	totals := []float64{0, 1e-9, 0.5, 3, 100, 59000, 1.23456789e7}
	ratios := []float64{1e-3, 0.5, 1, 2.3, 6, 7, 250}
	for _, total := range totals {
		for _, ratio := range ratios {
			got, err := Split(total, ratio)
			if err != nil {
				t.Fatalf("Split(%v, %v) unexpected error: %v", total, ratio, err)
			}
			if got.Oxidizer < 0 || got.Fuel < 0 {
				t.Errorf("Split(%v, %v) = %+v, want non-negative components", total, ratio, got)
			}
			if math.Abs(got.Total()-total) > 1e-12*math.Max(1, total) {
				t.Errorf("Split(%v, %v) components sum to %v, want %v", total, ratio, got.Total(), total)
			}
		}
	}
}

func TestSplitRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		ratio   float64
		wantErr error
	}{
		{name: "zero ratio", total: 10, ratio: 0, wantErr: ErrInvalidRatio},
		{name: "negative ratio", total: 10, ratio: -2.3, wantErr: ErrInvalidRatio},
		{name: "NaN ratio", total: 10, ratio: math.NaN(), wantErr: ErrInvalidRatio},
		{name: "infinite ratio", total: 10, ratio: math.Inf(1), wantErr: ErrInvalidRatio},
		{name: "negative total", total: -1, ratio: 2.3, wantErr: ErrInvalidMass},
		{name: "NaN total", total: math.NaN(), ratio: 2.3, wantErr: ErrInvalidMass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.total, tt.ratio)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Split() error = %v, want %v", err, tt.wantErr)
			}
			if got != (Components{}) {
				t.Errorf("Split() returned partial output %+v on error", got)
			}
		})
	}

	_, err := Split(1, 0)
	var ratioErr *InvalidRatioError
	if !errors.As(err, &ratioErr) {
		t.Fatalf("Split() error type = %T, want *InvalidRatioError", err)
	}
}

func TestComponentsArithmetic(t *testing.T) {
	a := Components{Oxidizer: 3, Fuel: 1}
	b := Components{Oxidizer: 1, Fuel: 2}

	if got := a.Add(b); got != (Components{Oxidizer: 4, Fuel: 3}) {
		t.Errorf("Add() = %+v", got)
	}
	if got := a.Sub(b); got != (Components{Oxidizer: 2, Fuel: -1}) {
		t.Errorf("Sub() = %+v", got)
	}
	if got := a.Scale(12); got != (Components{Oxidizer: 36, Fuel: 12}) {
		t.Errorf("Scale() = %+v", got)
	}
	if got := Sum(a, b, a); got != (Components{Oxidizer: 7, Fuel: 4}) {
		t.Errorf("Sum() = %+v", got)
	}
	if a.Get(Oxidizer) != 3 || a.Get(Fuel) != 1 {
		t.Errorf("Get() mismatch for %+v", a)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
