package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/config"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/server"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/shared/paths"
	"go.uber.org/zap"
)

func main() {
	// Parse flags
	showPaths := flag.Bool("paths", false, "Print the data, cache and config directories")
	runScript := flag.String("run", "", "Run a script file (or res://scripts/<name>.js)")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *metricsAddr != "" {
		cfg.Metrics.Address = *metricsAddr
	}

	if !*showPaths && *runScript == "" && cfg.Metrics.Address == "" {
		flag.Usage()
		os.Exit(2)
	}

	srv, err := server.New(cfg, paths.Bases{})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	if *showPaths {
		fmt.Println("data:  ", srv.Store.DataPath())
		fmt.Println("cache: ", srv.Store.CachePath())
		fmt.Println("config:", srv.Store.ConfigPath())
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	if cfg.Metrics.Address != "" {
		go func() {
			errChan <- srv.ServeMetrics(cfg.Metrics.Address)
		}()
	}

	if *runScript != "" {
		if err := srv.RunScript(ctx, *runScript); err != nil {
			srv.Logger.Error("script failed", zap.Error(err))
			srv.Close()
			os.Exit(1)
		}
	}

	if cfg.Metrics.Address == "" {
		return
	}

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		srv.Logger.Info("shutting down")
	case err := <-errChan:
		if err != nil {
			srv.Logger.Error("metrics server failed", zap.Error(err))
			srv.Close()
			os.Exit(1)
		}
	}
}
