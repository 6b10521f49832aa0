package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/air-quality-dashboard/internal/adapter/sqlite"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded data set and monthly summaries to a SQLite file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			db, err := sqlite.Open(out)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := sqlite.Export(cmd.Context(), db, ds, a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d measurements and %d monthly summaries to %s\n",
				res.Measurements, res.Summaries, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "air_quality.db", "SQLite file to write")
	return cmd
}
