// Package app wires together all dependencies and runs the theme service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darwin-elegiga/backend-theme/internal/cache"
	"github.com/darwin-elegiga/backend-theme/internal/client"
	"github.com/darwin-elegiga/backend-theme/internal/config"
	"github.com/darwin-elegiga/backend-theme/internal/domain"
	handler "github.com/darwin-elegiga/backend-theme/internal/handler/http"
	"github.com/darwin-elegiga/backend-theme/internal/repository/jsonfile"
	"github.com/darwin-elegiga/backend-theme/internal/service"
	"github.com/darwin-elegiga/backend-theme/pkg/health"
	"github.com/darwin-elegiga/backend-theme/pkg/middleware"
	"github.com/darwin-elegiga/backend-theme/pkg/tracing"
)

// App wires together all dependencies and runs the theme service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	redisClient     *redis.Client
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing before anything that serves requests.
	tracingCfg := tracing.DefaultConfig("theme-api")
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTLPEndpoint
	tracingCfg.SampleRate = cfg.TraceSampleRate
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Load the brand catalog. A service without one cannot start.
	store, err := jsonfile.New(cfg.BrandsConfigPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load brand catalog: %w", err)
	}
	logger.Info("brand catalog ready",
		slog.String("path", cfg.BrandsConfigPath),
		slog.Int("brands", len(store.IDs())),
	)

	// Theme cache. Redis is optional; the default in-memory cache covers a
	// single instance, which is all this service usually needs.
	var redisClient *redis.Client
	var themeCache cache.Cache[*domain.ResolvedTheme]
	switch {
	case !cfg.EnableCache || cfg.CacheTTL() == 0:
		themeCache = cache.NewPassthrough[*domain.ResolvedTheme]()
		logger.Info("theme cache disabled")
	case cfg.CacheBackend == "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		themeCache = cache.NewRedis[*domain.ResolvedTheme](redisClient, cfg.CacheTTL(), "theme:", logger)
		logger.Info("theme cache ready",
			slog.String("backend", "redis"),
			slog.String("addr", cfg.RedisAddr),
			slog.Duration("ttl", cfg.CacheTTL()),
		)
	default:
		themeCache = cache.NewMemory[*domain.ResolvedTheme](cfg.CacheTTL())
		logger.Info("theme cache ready",
			slog.String("backend", "memory"),
			slog.Duration("ttl", cfg.CacheTTL()),
		)
	}

	// Access code resolution through the verification API, when configured.
	var codes service.CodeResolver
	if cfg.VerificationAPIURL != "" {
		codes = client.NewVerificationClient(cfg.VerificationAPIURL, logger)
		logger.Info("verification api client ready", slog.String("url", cfg.VerificationAPIURL))
	}

	themeService := service.NewThemeService(
		store, themeCache, codes,
		cfg.StaticBaseURL, cfg.FontCSSBase(),
		logger,
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("brands", store.Healthy)
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(themeService, healthHandler, logger, handler.RouterConfig{
		ServiceName:    "theme",
		StaticDir:      cfg.StaticDir,
		CORS:           corsCfg,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		TracingEnabled: cfg.TracingEnabled,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		redisClient:     redisClient,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
