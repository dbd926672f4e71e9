package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tinytelemetry/tabfeed/internal/devto"
	"github.com/tinytelemetry/tabfeed/internal/httpserver"

	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tab registry and article listings as a JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath, cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
	cmd.Flags().String("api-addr", defaultAPIAddr, "address for the HTTP API")
	return cmd
}

func runServe(ctx context.Context, cfg appConfig) error {
	client := devto.NewClient(
		devto.WithTimeout(cfg.RequestTimeout),
		devto.WithUserAgent(cfg.UserAgent),
	)

	srv := httpserver.NewServer(cfg.APIAddr, client)
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.APIAddr, err)
	}

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("serving API: %w", err)
	}
	log.Printf("server: shut down")
	return nil
}
