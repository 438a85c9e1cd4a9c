package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

const celsiusOffset = 273.15

type densityOptions struct {
	unit     string
	pressure float64
	fluid    string
	out      string
}

type densityInputs struct {
	Temperature  float64 `json:"temperature"`
	Unit         string  `json:"unit"`
	TemperatureK float64 `json:"temperatureK"`
	PressurePa   float64 `json:"pressurePa"`
}

type densityOutputs struct {
	Density float64 `json:"densityKgPerM3"`
}

type densityResult struct {
	Fluid   string         `json:"fluid"`
	Inputs  densityInputs  `json:"inputs"`
	Outputs densityOutputs `json:"outputs"`
}

func newDensityCommand(a *app) *cobra.Command {
	o := &densityOptions{}
	cmd := &cobra.Command{
		Use:   "density TEMPERATURE",
		Short: "Look up the liquid density of a fluid",
		Example: `  propbudget density 90
  propbudget density --unit C -- -183
  propbudget density 109 --fluid Propane --pressure 300000 --out propane.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return a.finish(ctx, fmt.Errorf("invalid temperature %q: %w", args[0], err))
			}
			kelvin, err := toKelvin(t, o.unit)
			if err != nil {
				return a.finish(ctx, err)
			}
			rho, err := a.oracle.Density(ctx, o.fluid, kelvin, o.pressure)
			if err != nil {
				return a.finish(ctx, err)
			}
			result := densityResult{
				Fluid:   o.fluid,
				Inputs:  densityInputs{Temperature: t, Unit: o.unit, TemperatureK: kelvin, PressurePa: o.pressure},
				Outputs: densityOutputs{Density: rho},
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return a.finish(ctx, err)
			}
			data = append(data, '\n')
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return a.finish(ctx, err)
			}
			if o.out != "" {
				if err := os.WriteFile(o.out, data, 0o644); err != nil {
					return a.finish(ctx, fmt.Errorf("failed to write %s: %w", o.out, err))
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote results to %s\n", o.out)
			}
			return a.finish(ctx, nil)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.unit, "unit", "K", "temperature unit: K or C")
	f.Float64Var(&o.pressure, "pressure", 101325, "pressure in Pa")
	f.StringVar(&o.fluid, "fluid", "Oxygen", "fluid name")
	f.StringVar(&o.out, "out", "", "also write the JSON result to this file")
	return cmd
}

func toKelvin(t float64, unit string) (float64, error) {
	switch unit {
	case "K", "k":
		return t, nil
	case "C", "c":
		return t + celsiusOffset, nil
	default:
		return 0, fmt.Errorf("unsupported temperature unit %q, expected K or C", unit)
	}
}
