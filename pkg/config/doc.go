// Package config defines the vehicle configuration consumed by the planner.
//
// Configuration Types:
//
//   - VehicleConfig: the complete description of one vehicle and mission
//   - SizingConfig: orbit, payload, delta-v losses and per-stage allocation
//   - BudgetConfig: loss and residual assumptions of the budgeted stage
//   - FluidsConfig: extra density tables and pinned densities
//   - Overrides: optional per-run changes applied on top of a VehicleConfig
//
// Configuration Sources (see internal/config):
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (PROPBUDGET_ prefix)
//  3. YAML configuration file
//  4. DefaultVehicleConfig (lowest priority)
//
// Validate checks the structure of a configuration (stage list, enumerations,
// names). Physical preconditions such as positive Isp or non-negative masses
// are checked by the computation itself so that they surface as typed errors
// from pkg/core.
package config
