package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vehicle-design/propbudget/internal/actuator"
	"github.com/vehicle-design/propbudget/internal/config"
	"github.com/vehicle-design/propbudget/internal/fluidcache"
	"github.com/vehicle-design/propbudget/internal/logging"
	"github.com/vehicle-design/propbudget/internal/planner"
	"github.com/vehicle-design/propbudget/internal/tracing"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app is the state shared by the subcommands of one invocation.
type app struct {
	configFile string

	cfg      *config.Config
	oracle   *fluidcache.CachingOracle
	metrics  *actuator.MetricsEmitter
	planner  *planner.Planner
	shutdown tracing.ShutdownFunc
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "propbudget",
		Short:         "Size a launch vehicle and budget the propellant loaded for a stage",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "vehicle configuration file (YAML)")
	pf.StringP("output", "o", config.FormatYAML, "report format: yaml or json")
	pf.Int32("decimals", 1, "decimals figures are rounded to in the report")
	pf.String("metrics-file", "", "write Prometheus metrics in textfile format to this path")
	pf.Bool("trace", false, "export OpenTelemetry spans to stderr")
	pf.String("log-level", "info", "log level: error, warn, info, debug or trace")
	pf.Bool("log-json", false, "log in JSON")
	pf.String("fluid-tables", "", "extra fluid density tables (YAML)")

	vf := pflag.NewFlagSet("vehicle", pflag.ContinueOnError)
	vf.Float64("payload", 0, "payload mass carried by the top stage, in kg")
	vf.Float64("altitude", 0, "target circular orbit altitude, in m")
	vf.Int("ignitions", 0, "on-pad ignitions per engine of the budgeted stage")
	vf.Float64("burnable", 0, "burnable propellant mass of the budgeted stage, in kg")
	vf.String("fuel-accounting", "", "multi-ignition fuel accounting: complete or sourceCompatible")
	pf.AddFlagSet(vf)

	root.AddCommand(
		newSizeCommand(a),
		newBudgetCommand(a),
		newRunCommand(a),
		newSweepCommand(a),
		newDensityCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	// Flags are needed before the configuration is decoded so that a bad
	// --log-level is reported with the right logger.
	level, _ := cmd.Flags().GetString("log-level")
	asJSON, _ := cmd.Flags().GetBool("log-json")
	if _, err := logging.NewLogger(logging.Options{Level: level, JSON: asJSON}); err != nil {
		return err
	}

	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.Log.Level != level || cfg.Log.JSON != asJSON {
		if _, err := logging.NewLogger(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON}); err != nil {
			return err
		}
	}

	a.shutdown, err = tracing.Init(cmd.Context(), tracing.Options{
		Enabled: cfg.Trace.Enabled,
		Output:  os.Stderr,
		Version: version,
	})
	if err != nil {
		return err
	}

	a.oracle, err = planner.NewOracle(cfg.Fluids)
	if err != nil {
		return fmt.Errorf("failed to build density oracle: %w", err)
	}
	a.metrics = actuator.NewMetricsEmitter()
	a.planner = planner.New(a.oracle, planner.WithRecorder(a.metrics))
	cmd.SetContext(logging.IntoContext(cmd.Context(), logging.Log().WithName(cmd.Name())))
	return nil
}

// finish writes the metrics textfile and flushes tracing. It keeps err,
// which may be a load budget warning, as the command result.
func (a *app) finish(ctx context.Context, err error) error {
	if a.cfg.Metrics.File != "" {
		if werr := a.metrics.WriteTextfile(a.cfg.Metrics.File); werr != nil {
			err = errors.Join(err, werr)
		}
	}
	stats := a.oracle.Stats()
	logging.FromContext(ctx).V(logging.DEBUG).Info("Density cache",
		"hits", stats.Hits, "misses", stats.Misses, "entries", stats.Entries)
	if serr := a.shutdown(ctx); serr != nil {
		err = errors.Join(err, fmt.Errorf("failed to flush traces: %w", serr))
	}
	return err
}

// render writes v in the configured format and rounding.
func (a *app) render(cmd *cobra.Command, v any) error {
	return actuator.RenderReport(cmd.OutOrStdout(), v, a.cfg.Output.Format, a.cfg.Output.Decimals)
}
