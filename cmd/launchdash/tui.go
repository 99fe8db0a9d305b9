// ABOUTME: The tui subcommand: loads the dataset and runs the interactive terminal dashboard.
// ABOUTME: Info logging is suppressed while the alternate screen is active.
package main

import (
	"github.com/2389-research/launchdash/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Explore the dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a.logger = a.logger.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
			d, err := a.loadDataset(ctx)
			if err != nil {
				return err
			}
			return tui.Run(ctx, d)
		},
	}
}
