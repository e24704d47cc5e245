package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ersonp/fightnight/internal/infrastructure/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule as a JSON API",
		Long:  "Starts an HTTP server exposing /events, /promotions, /refresh, /health and /metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default: server.addr from config)")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		if addr != "" {
			deps.Config.Server.Addr = addr
		}

		logger := slog.Default().With("component", "http")
		server := httpapi.NewServer(deps.Config, deps.Schedule, deps.Metrics.Handler(), logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", deps.Config.Server.Addr)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serving http: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return <-errCh
	})
}
