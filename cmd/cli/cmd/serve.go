// Package cmd - serve command
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aws-cost-calc/api"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/logging"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	Long: `Start the HTTP API. Every calculator is exposed under /v1; /metrics
serves Prometheus metrics and /health a liveness probe.

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *config.Get()
		if cmd.Flags().Changed("addr") {
			cfg.Server.Address = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := logging.Named("api")
		logger.Info("starting api server",
			zap.String("version", Version),
			zap.String("address", cfg.Server.Address),
		)
		return api.NewServer(&cfg, Version, api.WithLogger(logger)).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}
