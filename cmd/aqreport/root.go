package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/air-quality-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/air-quality-dashboard/internal/config"
	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
	"github.com/couchcryptid/air-quality-dashboard/internal/observability"
)

// app carries the state shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	dataDir         string
	duplicatePolicy string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "aqreport",
		Short:         "Air quality reports for the five PRSA monitoring locations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding the location CSV files (overrides DATA_DIR)")
	root.PersistentFlags().StringVar(&a.duplicatePolicy, "duplicate-policy", "", "keep-all, keep-last or reject (overrides DUPLICATE_POLICY)")

	root.AddCommand(newDescribeCmd(a), newExportCmd(a))
	return root
}

// init loads configuration and applies flag overrides.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if f.Changed("duplicate-policy") {
		policy, err := domain.ParseDuplicatePolicy(a.duplicatePolicy)
		if err != nil {
			return err
		}
		cfg.DuplicatePolicy = policy
	}
	a.cfg = cfg
	a.logger = observability.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

func (a *app) loadDataset(ctx context.Context) (*domain.Dataset, error) {
	return csvfile.NewLoader(a.cfg.DataDir, a.cfg.DuplicatePolicy, a.logger).Load(ctx)
}
