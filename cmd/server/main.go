// Package main - Entry point for the aws-cost-calc API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"aws-cost-calc/api"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/logging"
	"aws-cost-calc/internal/metrics"
)

var version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "Config file (JSON)")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	if err := run(*cfgPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "aws-cost-calc server: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr string) error {
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	logger := logging.Named("api")
	logger.Info("starting aws-cost-calc server",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
		zap.Strings("allowed_origins", cfg.Server.AllowedOrigins),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(cfg, version,
		api.WithLogger(logger),
		api.WithMetrics(metrics.New("aws-cost-calc")),
	)
	return srv.Run(ctx)
}
