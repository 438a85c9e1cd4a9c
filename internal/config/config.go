// Package config loads the run configuration from defaults, a YAML file,
// PROPBUDGET_ environment variables and command-line flags.
package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vehicle-design/propbudget/internal/logging"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
)

// EnvPrefix is the prefix of every environment override,
// e.g. PROPBUDGET_SIZING_PAYLOADMASS.
const EnvPrefix = "PROPBUDGET"

// Report formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config is the complete run configuration.
type Config struct {
	vehicle.VehicleConfig `yaml:",inline" mapstructure:",squash"`

	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Trace   TraceConfig   `yaml:"trace" mapstructure:"trace"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Sweep   SweepConfig   `yaml:"sweep" mapstructure:"sweep"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is yaml or json.
	Format string `yaml:"format" mapstructure:"format"`
	// Decimals is the number of decimals figures are rounded to.
	Decimals int32 `yaml:"decimals" mapstructure:"decimals"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// File is written in the node-exporter textfile format when set.
	File string `yaml:"file" mapstructure:"file"`
}

// TraceConfig controls OpenTelemetry tracing.
type TraceConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// SweepConfig bounds trade-study parallelism.
type SweepConfig struct {
	// Parallelism is the maximum number of concurrent runs; <= 0 means unbounded.
	Parallelism int `yaml:"parallelism" mapstructure:"parallelism"`
}

// Default returns the default run configuration.
func Default() Config {
	return Config{
		VehicleConfig: vehicle.DefaultVehicleConfig(),
		Output:        OutputConfig{Format: FormatYAML, Decimals: 1},
		Log:           LogConfig{Level: "info"},
		Sweep:         SweepConfig{Parallelism: 4},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"altitude":        "sizing.altitude",
	"payload":         "sizing.payloadMass",
	"ignitions":       "budget.engines.ignitionsPerEngine",
	"burnable":        "budget.burnableMass",
	"fuel-accounting": "budget.multiIgnitionFuelAccounting",
	"fluid-tables":    "fluids.tablesFile",
	"output":          "output.format",
	"decimals":        "output.decimals",
	"metrics-file":    "metrics.file",
	"trace":           "trace.enabled",
	"log-level":       "log.level",
	"log-json":        "log.json",
	"parallelism":     "sweep.parallelism",
}

// Load merges, in increasing priority, the defaults, the YAML file at path
// (if non-empty), environment variables and the flags in fs (if non-nil).
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Only keys present in the defaults or the file are looked up in the
	// environment, so every leaf of Config must be marshalled by Default.
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Log().V(logging.DEBUG).Info("Loaded configuration",
		"file", v.ConfigFileUsed(),
		"vehicle", cfg.Name,
		"stages", len(cfg.Sizing.Stages),
		"output", cfg.Output.Format)
	return &cfg, nil
}

// Validate checks the vehicle and the run settings.
func (c *Config) Validate() error {
	if err := c.VehicleConfig.Validate(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatYAML, FormatJSON, c.Output.Format)
	}
	if c.Output.Decimals < 0 || c.Output.Decimals > 12 {
		return fmt.Errorf("output.decimals must be between 0 and 12, got %d", c.Output.Decimals)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
