package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/microlearn/sessionrank/internal/adapters/catalog"
	"github.com/microlearn/sessionrank/internal/adapters/genai"
	"github.com/microlearn/sessionrank/internal/adapters/http/api"
	"github.com/microlearn/sessionrank/internal/adapters/http/swagger"
	service "github.com/microlearn/sessionrank/internal/app"
	"github.com/microlearn/sessionrank/internal/config"
	"github.com/microlearn/sessionrank/pkg/logger"
	"github.com/microlearn/sessionrank/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	// We collect our own custom system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithBackend(cfg.Backend),
		service.WithFusionEpochs(cfg.FusionEpochs),
		service.WithFusionSeed(cfg.FusionSeed),
		service.WithTopK(cfg.TopK),
	}

	// The catalog and the generative peer are optional; the scoring core
	// works without either.
	if cfg.CatalogPath != "" {
		store := catalog.NewStore()
		if err := store.LoadFile(cfg.CatalogPath); err != nil {
			os.Stderr.WriteString("failed to load catalog: " + err.Error() + "\n")
			return
		}
		log.Info(ctx, "catalog loaded",
			logger.String("path", cfg.CatalogPath),
			logger.Int("lectures", store.Count()),
		)
		opts = append(opts, service.WithCatalog(store))
	}
	if cfg.GenAIAPIKey != "" {
		client, err := genai.NewClient(genai.Config{
			APIKey:  cfg.GenAIAPIKey,
			BaseURL: cfg.GenAIBaseURL,
			Model:   cfg.GenAIModel,
		})
		if err != nil {
			os.Stderr.WriteString("failed to build genai client: " + err.Error() + "\n")
			return
		}
		opts = append(opts, service.WithRecommender(client))
	}

	svc := service.New(opts...)
	log.Info(ctx, "scoring service ready", logger.String("backend", svc.Backend()))

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMetrics(m.Alloc, runtime.NumGoroutine())
		}
	}
}
