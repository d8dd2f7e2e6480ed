package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/penguinlens/config"
	"github.com/spektr-org/penguinlens/dashboard"
	"github.com/spektr-org/penguinlens/reactive"
	"github.com/spektr-org/penguinlens/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(g *globalOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config addr)")
	return cmd
}

// newHandler builds the dashboard server for cfg.
func newHandler(cfg *config.Config) (*server.Server, error) {
	ds, err := loadDataset(cfg)
	if err != nil {
		return nil, err
	}
	store, err := reactive.NewStore(cfg.Selection())
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "%v", err)
	}
	dash := dashboard.New(ds, dashboard.WithMaxBins(cfg.MaxHistogramBins))
	return server.New(dash, store, server.Page{Title: cfg.Title, GitHubURL: cfg.GitHubURL}), nil
}

// serve runs the HTTP server until ctx is cancelled or it fails.
func serve(ctx context.Context, cfg *config.Config) error {
	handler, err := newHandler(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("dashboard listening", "addr", cfg.Addr, "title", cfg.Title)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitError(ExitStartupFailure, "listen on %s: %v", cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		handler.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
