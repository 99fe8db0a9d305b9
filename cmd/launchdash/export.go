// ABOUTME: The export subcommand: writes the loaded dataset to a SQLite file.
// ABOUTME: The file can be served later with --source sqlite://<path>.
package main

import (
	"errors"

	"github.com/2389-research/launchdash/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dataset to a SQLite database",
		Example: `  launchdash export --source spacex_launch_dash.csv --out launches.db
  launchdash serve --source sqlite://launches.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			ctx := cmd.Context()
			d, err := a.loadDataset(ctx)
			if err != nil {
				return err
			}
			if err := dataset.WriteSQLite(ctx, d, out); err != nil {
				return err
			}
			a.logger.Info("dataset exported", zap.String("path", out), zap.Int("records", d.Len()))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "SQLite file to write (created or replaced)")
	return cmd
}
