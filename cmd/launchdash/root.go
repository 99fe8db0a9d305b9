// ABOUTME: Root cobra command and the shared state (config, logger) every subcommand receives.
// ABOUTME: Configuration is resolved once per invocation in PersistentPreRunE.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/2389-research/launchdash/config"
	"github.com/2389-research/launchdash/dataset"
	"github.com/2389-research/launchdash/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what subcommands share.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	configFile string
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "launchdash",
		Short: "SpaceX launch records dashboard",
		Long: `launchdash loads a table of SpaceX launch records and shows launch
success by site and payload mass versus mission outcome, in a browser or
in the terminal.

Configuration is read from flags, LAUNCHDASH_* environment variables, and
an optional YAML file, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.logger.Sync() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file (default $"+config.EnvConfigFile+" or ./launchdash.yaml)")
	config.RegisterFlags(pf)

	root.AddCommand(
		newServeCommand(a),
		newTUICommand(a),
		newSummaryCommand(a),
		newExportCommand(a),
		newVersionCommand(a),
	)
	return root
}

// setup resolves configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(cmd.Flags(), a.configFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// loadDataset loads the configured source and rejects datasets the
// dashboard cannot display.
func (a *app) loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	d, err := dataset.Load(ctx, a.cfg.Source, dataset.WithTimeout(a.cfg.FetchTimeout))
	if err != nil {
		return nil, err
	}
	if _, _, err := dataset.Bounds(d); err != nil {
		if errors.Is(err, dataset.ErrEmptyDataset) {
			return nil, fmt.Errorf("dataset %s: %w", a.cfg.Source, err)
		}
		return nil, err
	}
	a.logger.Info("dataset loaded",
		zap.String("source", d.Source()),
		zap.String("dataset_id", d.ID()),
		zap.Int("records", d.Len()),
		zap.Strings("sites", d.Sites()),
	)
	return d, nil
}

// readAbout returns the configured about-block markdown, if any.
func (a *app) readAbout() ([]byte, error) {
	if a.cfg.About == "" {
		return nil, nil
	}
	b, err := os.ReadFile(a.cfg.About)
	if err != nil {
		return nil, fmt.Errorf("read about file: %w", err)
	}
	return b, nil
}
