package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/zoneprofile/internal/adapters/http/api"
	"github.com/okian/zoneprofile/internal/adapters/http/site"
	"github.com/okian/zoneprofile/internal/adapters/http/swagger"
	"github.com/okian/zoneprofile/internal/adapters/platform"
	"github.com/okian/zoneprofile/internal/adapters/tokenstore"
	"github.com/okian/zoneprofile/internal/app"
	"github.com/okian/zoneprofile/internal/config"
	"github.com/okian/zoneprofile/pkg/logger"
	"github.com/okian/zoneprofile/pkg/metrics"
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
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsBucketsMS),
	)

	store, err := openTokenStore(cfg)
	if err != nil {
		loggerInstance.Error(ctx, "open token store", logger.Error(err))
		os.Exit(1)
	}

	ctrl := newController(cfg, store, loggerInstance)

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(ctrl,
		api.WithCookieName(cfg.SessionCookie),
		api.WithLogger(loggerInstance.Named("api")),
	).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("token_store", cfg.TokenStore),
			logger.Bool("enhanced_charts", cfg.EnhancedCharts))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// openTokenStore returns the configured token backend.
func openTokenStore(cfg *config.Config) (tokenstore.Storage, error) {
	switch cfg.TokenStore {
	case config.TokenStoreMemory:
		return tokenstore.NewMemory(), nil
	case config.TokenStoreFile:
		f, err := tokenstore.OpenFile(cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: unknown token_store %q", config.ErrInvalidConfig, cfg.TokenStore)
	}
}

// newController wires the platform clients into a session controller.
func newController(cfg *config.Config, store tokenstore.Storage, l logger.Logger) *app.Controller {
	clientOpts := []platform.Option{
		platform.WithTimeout(cfg.RequestTimeout()),
		platform.WithLogger(l.Named("platform")),
	}
	return app.New(
		platform.NewAuthClient(cfg.AuthURL, clientOpts...),
		platform.NewGraphQLClient(cfg.GraphQLURL, clientOpts...),
		store,
		app.WithLogger(l.Named("controller")),
		app.WithErrorLogoutDelay(cfg.ErrorLogoutDelay()),
		app.WithEnhancedCharts(cfg.EnhancedCharts),
	)
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
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
