// ABOUTME: The serve subcommand: loads the dataset, then runs the web dashboard until interrupted.
// ABOUTME: The listener and the shutdown watcher run in one errgroup so a bind failure or a signal ends both.
package main

import (
	"context"
	"time"

	"github.com/2389-research/launchdash/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown after a signal.
const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	d, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	about, err := a.readAbout()
	if err != nil {
		return err
	}

	srv, err := web.NewServer(web.ServerConfig{
		Addr:     a.cfg.Addr(),
		Dataset:  d,
		Logger:   a.logger,
		CacheTTL: a.cfg.CacheTTL,
		About:    about,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down", zap.String("addr", srv.Addr()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
