// Package http wires the theme API's routes and HTTP handlers.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darwin-elegiga/backend-theme/internal/service"
	"github.com/darwin-elegiga/backend-theme/pkg/health"
	"github.com/darwin-elegiga/backend-theme/pkg/middleware"
)

// staticCacheMaxAge is the Cache-Control max-age for static assets. Fonts and
// logos are immutable per deployment, a day keeps repeat page loads cheap.
const staticCacheMaxAge = 86400

// RouterConfig carries the HTTP-surface knobs of the service.
type RouterConfig struct {
	ServiceName    string
	StaticDir      string
	CORS           middleware.CORSConfig
	PprofCIDRs     []string
	TracingEnabled bool
}

// NewRouter creates a chi router with all theme service routes registered.
func NewRouter(
	themeService *service.ThemeService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing(cfg.ServiceName))
	}
	r.Use(middleware.RequestLogger(logger))

	// Health and operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	// Theme API endpoints
	themeHandler := NewThemeHandler(themeService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", themeHandler.HealthCheck)
		r.Get("/brands", themeHandler.ListBrands)
		r.Get("/theme/{code}", themeHandler.GetTheme)
		r.Get("/theme/{code}/colors", themeHandler.GetColors)
		r.Get("/fonts/{code}/fonts.css", themeHandler.GetFontCSS)
	})

	// Static assets (fonts, logos, placeholders)
	if cfg.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.With(middleware.CacheControl(staticCacheMaxAge)).Get("/static/*", fs.ServeHTTP)
	}

	return r
}
