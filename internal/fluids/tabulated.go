package fluids

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/interp"
	"gopkg.in/yaml.v3"

	"github.com/vehicle-design/propbudget/pkg/core"
)

//go:embed tables.yaml
var defaultTables []byte

// Table is a saturated liquid density curve for one fluid.
type Table struct {
	Name string `yaml:"name"`
	// MaxPressure is the highest tank pressure in Pa the curve is used for.
	MaxPressure float64 `yaml:"maxPressure"`
	// Temperature points in K, strictly increasing.
	Temperature []float64 `yaml:"temperature"`
	// Density in kg/m³ at each temperature point.
	Density []float64 `yaml:"density"`
	// SaturationPressure is the vapor pressure in Pa at each temperature
	// point. Optional; without it only maxPressure bounds the state.
	SaturationPressure []float64 `yaml:"saturationPressure,omitempty"`
}

type tableFile struct {
	Fluids []Table `yaml:"fluids"`
}

// ParseTables decodes a YAML document with a top-level "fluids" list.
func ParseTables(data []byte) ([]Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fluid tables: %w", err)
	}
	if len(f.Fluids) == 0 {
		return nil, fmt.Errorf("no fluid tables defined")
	}
	return f.Fluids, nil
}

// ReadTablesFile parses the density tables stored at path.
func ReadTablesFile(path string) ([]Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fluid tables: %w", err)
	}
	return ParseTables(data)
}

// DefaultTables returns the built-in density tables.
func DefaultTables() ([]Table, error) {
	return ParseTables(defaultTables)
}

type curve struct {
	minT, maxT  float64
	maxPressure float64
	fit         interp.PiecewiseLinear
	// psat is nil when the table carries no saturation pressures.
	psat *interp.PiecewiseLinear
}

// TabulatedOracle interpolates density over temperature from tables.
// It is safe for concurrent use once constructed.
type TabulatedOracle struct {
	curves map[string]*curve
}

var _ Oracle = (*TabulatedOracle)(nil)

// NewTabulatedOracle fits one curve per table. Later tables replace earlier
// ones with the same name.
func NewTabulatedOracle(tables []Table) (*TabulatedOracle, error) {
	o := &TabulatedOracle{curves: make(map[string]*curve, len(tables))}
	for _, t := range tables {
		if t.Name == "" {
			return nil, fmt.Errorf("fluid table without a name")
		}
		if len(t.Temperature) != len(t.Density) {
			return nil, fmt.Errorf("fluid %s: %d temperatures but %d densities",
				t.Name, len(t.Temperature), len(t.Density))
		}
		if len(t.Temperature) < 2 {
			return nil, fmt.Errorf("fluid %s: at least two points are required", t.Name)
		}
		for i := 1; i < len(t.Temperature); i++ {
			if !(t.Temperature[i] > t.Temperature[i-1]) {
				return nil, fmt.Errorf("fluid %s: temperatures must be strictly increasing", t.Name)
			}
		}
		if !(t.MaxPressure > 0) {
			return nil, fmt.Errorf("fluid %s: maxPressure must be > 0", t.Name)
		}
		for _, rho := range t.Density {
			if !(rho > 0) || math.IsInf(rho, 0) {
				return nil, fmt.Errorf("fluid %s: density %g must be > 0", t.Name, rho)
			}
		}
		c := &curve{maxPressure: t.MaxPressure}
		if err := c.fit.Fit(t.Temperature, t.Density); err != nil {
			return nil, fmt.Errorf("fluid %s: %w", t.Name, err)
		}
		if len(t.SaturationPressure) > 0 {
			psat, err := fitSaturation(t)
			if err != nil {
				return nil, err
			}
			c.psat = psat
		}
		c.minT = t.Temperature[0]
		c.maxT = t.Temperature[len(t.Temperature)-1]
		o.curves[t.Name] = c
	}
	return o, nil
}

func fitSaturation(t Table) (*interp.PiecewiseLinear, error) {
	if len(t.SaturationPressure) != len(t.Temperature) {
		return nil, fmt.Errorf("fluid %s: %d temperatures but %d saturation pressures",
			t.Name, len(t.Temperature), len(t.SaturationPressure))
	}
	for _, p := range t.SaturationPressure {
		if !(p >= 0) || p > t.MaxPressure {
			return nil, fmt.Errorf("fluid %s: saturation pressure %g must be in [0, %g]", t.Name, p, t.MaxPressure)
		}
	}
	var fit interp.PiecewiseLinear
	if err := fit.Fit(t.Temperature, t.SaturationPressure); err != nil {
		return nil, fmt.Errorf("fluid %s: %w", t.Name, err)
	}
	return &fit, nil
}

// NewDefaultOracle builds a TabulatedOracle over the built-in tables.
func NewDefaultOracle() (*TabulatedOracle, error) {
	tables, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return NewTabulatedOracle(tables)
}

// Fluids returns the supported fluid identifiers in sorted order.
func (o *TabulatedOracle) Fluids() []string {
	names := make([]string, 0, len(o.curves))
	for name := range o.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemperatureRange returns the tabulated temperature span of fluid.
func (o *TabulatedOracle) TemperatureRange(fluid string) (lo, hi float64, ok bool) {
	c, ok := o.curves[fluid]
	if !ok {
		return 0, 0, false
	}
	return c.minT, c.maxT, true
}

// Density implements Oracle.
func (o *TabulatedOracle) Density(ctx context.Context, fluid string, temperature, pressure float64) (float64, error) {
	fail := func(err error) (float64, error) {
		return 0, &core.DensityLookupError{Fluid: fluid, Temperature: temperature, Pressure: pressure, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	c, ok := o.curves[fluid]
	if !ok {
		return fail(ErrUnknownFluid)
	}
	if math.IsNaN(temperature) || temperature < c.minT || temperature > c.maxT {
		return fail(fmt.Errorf("temperature outside tabulated range [%g, %g] K", c.minT, c.maxT))
	}
	if !(pressure > 0) || pressure > c.maxPressure {
		return fail(fmt.Errorf("pressure outside accepted range (0, %g] Pa", c.maxPressure))
	}
	if c.psat != nil {
		if psat := c.psat.Predict(temperature); pressure < psat {
			return fail(fmt.Errorf("pressure below saturation pressure %g Pa, state is vapor", psat))
		}
	}
	return c.fit.Predict(temperature), nil
}
