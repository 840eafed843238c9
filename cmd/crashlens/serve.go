package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spektr-org/crashlens/helpers"
	"github.com/spektr-org/crashlens/internal/monitoring"
	"github.com/spektr-org/crashlens/internal/server"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP bridge for browser renderers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			opts, err := cfg.EngineOptions()
			if err != nil {
				return err
			}
			ds, err := helpers.LoadDataset(cfg.Data)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Listen:         cfg.Listen,
				AllowedOrigins: cfg.AllowedOrigins,
				Title:          cfg.Title,
				AssetsHost:     cfg.AssetsHost,
			}, ds, opts...)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				fmt.Fprintln(os.Stderr, "\nShutting down server...")
				shutdown(srv)
			}()

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}

// shutdown stops srv, logging instead of returning the error since the
// caller is the signal goroutine.
func shutdown(srv interface{ Shutdown(context.Context) error }) {
	if err := srv.Shutdown(context.Background()); err != nil {
		monitoring.Logf("⚠️ shutdown: %v", err)
	}
}
