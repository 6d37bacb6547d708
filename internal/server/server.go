package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GriffinCanCode/AgentOS/assetkit/assets"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/config"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/logging"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/providers/filesystem"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/providers/http/client"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/providers/resource"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/script"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/vfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Server wires the path store, bundle namespace, fetcher and script runtime
type Server struct {
	Logger    *logging.Logger
	Store     *filesystem.Store
	Namespace *vfs.Namespace
	Fetcher   *resource.Fetcher
	Scripts   *script.Runtime
	Registry  *prometheus.Registry

	metricsSrv *http.Server
}

// New creates a server instance from cfg. bases locates the per-app
// directories; the zero value means the user's XDG directories.
func New(cfg *config.Config, bases paths.Bases) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	if bases == (paths.Bases{}) {
		bases = paths.DefaultBases()
	}

	identity := paths.Identity{
		Organization:   cfg.Identity.Organization,
		Domain:         cfg.Identity.Domain,
		Application:    cfg.Identity.Application,
		Version:        cfg.Identity.Version,
		IncludeVersion: cfg.Identity.IncludeVersion,
	}

	ns := vfs.NewNamespace(assets.Bundled(), vfs.WithLogger(logger))
	store := filesystem.NewStore(identity, bases,
		filesystem.WithLogger(logger),
		filesystem.WithBundled(ns.FS()))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	httpClient := client.NewClient(client.Config{
		Timeout:   cfg.HTTP.Timeout,
		Retries:   cfg.HTTP.Retries,
		RateLimit: cfg.HTTP.RateLimit,
		UserAgent: cfg.HTTP.UserAgent,
		Headers:   cfg.HTTP.Headers,
	})

	dataDir := cfg.Resource.DataDir
	if dataDir == "" {
		dataDir = store.DataPath()
	}

	fetcher, err := resource.New(resource.Config{
		BaseURL: cfg.Resource.BaseURL,
		DataDir: dataDir,
	}, ns,
		resource.WithClient(httpClient),
		resource.WithLogger(logger),
		resource.WithMetrics(metrics))
	if err != nil {
		ns.Close()
		return nil, err
	}

	logger.Debug("server initialized",
		zap.String("data_dir", dataDir),
		zap.String("base_url", cfg.Resource.BaseURL))

	return &Server{
		Logger:    logger,
		Store:     store,
		Namespace: ns,
		Fetcher:   fetcher,
		Scripts:   script.NewRuntime(store, fetcher, logger),
		Registry:  registry,
	}, nil
}

// RunScript runs a script from disk, or from the namespace when path starts
// with "res://".
func (s *Server) RunScript(ctx context.Context, path string) error {
	rel, ok := strings.CutPrefix(path, filesystem.BundledScheme)
	if !ok {
		return s.Scripts.RunFile(ctx, path)
	}

	src, err := s.Namespace.ReadFile(rel)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return s.Scripts.Run(ctx, string(src), path)
}

// ServeMetrics serves /metrics on addr until Close is called.
func (s *Server) ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.Handler(s.Registry))

	s.metricsSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.Logger.Info("serving metrics", zap.String("addr", addr))
	if err := s.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the metrics endpoint and unmounts all bundles
func (s *Server) Close() error {
	var errs []error
	if s.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, s.metricsSrv.Shutdown(ctx))
	}
	errs = append(errs, s.Namespace.Close())
	s.Logger.Sync()
	return errors.Join(errs...)
}
