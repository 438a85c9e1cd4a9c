package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/vehicle-design/propbudget/api/v1alpha1"
	"github.com/vehicle-design/propbudget/internal/planner"
	vehicle "github.com/vehicle-design/propbudget/pkg/config"
)

func newSizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Allocate the delta-v budget and size every stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			report, err := a.planner.Size(ctx, a.cfg.VehicleConfig)
			if err != nil {
				return a.finish(ctx, err)
			}
			return a.finish(ctx, a.render(cmd, &planner.Report{Vehicle: a.cfg.Name, Sizing: report}))
		},
	}
}

func newBudgetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Compute losses, residuals and loaded propellant for the budgeted stage",
		Long: `Compute losses, residuals and loaded propellant for the budgeted stage.

The report is written even when a load figure is negative; the command then
exits with status 2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			report, err := a.planner.Budget(ctx, a.cfg.VehicleConfig)
			if report == nil {
				return a.finish(ctx, err)
			}
			if rerr := a.render(cmd, &planner.Report{Vehicle: a.cfg.Name, Budget: report}); rerr != nil {
				return a.finish(ctx, rerr)
			}
			return a.finish(ctx, err)
		},
	}
}

func newRunCommand(a *app) *cobra.Command {
	var document string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sizing and mass-budget paths and write the full report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			report, err := a.planner.Run(ctx, a.cfg.VehicleConfig)
			if document != "" {
				if derr := writeDocument(document, a.cfg.VehicleConfig, report, err); derr != nil {
					return a.finish(ctx, errors.Join(err, derr))
				}
			}
			if report == nil {
				return a.finish(ctx, err)
			}
			if rerr := a.render(cmd, report); rerr != nil {
				return a.finish(ctx, rerr)
			}
			return a.finish(ctx, err)
		},
	}
	cmd.Flags().StringVar(&document, "document", "",
		"also write a VehicleBudget document with the vehicle and the run status to this path")
	return cmd
}

func writeDocument(path string, spec vehicle.VehicleConfig, report *planner.Report, runErr error) error {
	doc := v1alpha1.NewVehicleBudget(spec)
	doc.SetResult(report, runErr, metav1.Now())
	data, err := v1alpha1.Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
