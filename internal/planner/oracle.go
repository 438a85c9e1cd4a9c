package planner

import (
	"github.com/vehicle-design/propbudget/internal/fluidcache"
	"github.com/vehicle-design/propbudget/internal/fluids"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
)

// NewOracle builds the density oracle described by cfg: pinned densities
// first, then the built-in tables extended by cfg.TablesFile, all behind a
// shared cache.
func NewOracle(cfg vehicle.FluidsConfig) (*fluidcache.CachingOracle, error) {
	tables, err := fluids.DefaultTables()
	if err != nil {
		return nil, err
	}
	if cfg.TablesFile != "" {
		extra, err := fluids.ReadTablesFile(cfg.TablesFile)
		if err != nil {
			return nil, err
		}
		tables = append(tables, extra...)
	}
	tabulated, err := fluids.NewTabulatedOracle(tables)
	if err != nil {
		return nil, err
	}

	var chain fluids.Chain
	if len(cfg.Pinned) > 0 {
		pinned := make(fluids.StaticOracle, len(cfg.Pinned))
		for _, p := range cfg.Pinned {
			pinned[p.Fluid] = p.Density
		}
		chain = append(chain, pinned)
	}
	chain = append(chain, tabulated)
	return fluidcache.New(chain), nil
}
