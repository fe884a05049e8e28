package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darwin-elegiga/backend-theme/internal/cache"
	"github.com/darwin-elegiga/backend-theme/internal/domain"
	"github.com/darwin-elegiga/backend-theme/internal/service"
	"github.com/darwin-elegiga/backend-theme/pkg/health"
	"github.com/darwin-elegiga/backend-theme/pkg/middleware"
)

// stubRepository serves a fixed brand catalog.
type stubRepository struct {
	brands map[string]*domain.BrandConfig
	ids    []string
}

func (s *stubRepository) Get(ctx context.Context, brandID string) (*domain.BrandConfig, error) {
	if cfg, ok := s.brands[brandID]; ok {
		return cfg, nil
	}
	return nil, &domain.BrandNotFoundError{BrandID: brandID, Available: s.ids}
}

func (s *stubRepository) IDs() []string                  { return s.ids }
func (s *stubRepository) Reload(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := &stubRepository{
		ids: []string{"mapfre", "santander"},
		brands: map[string]*domain.BrandConfig{
			"mapfre": {
				CustomerName: "Mapfre",
				Colors:       map[string]string{"primary": "#d81e05", "text": "#333333"},
				Fonts: domain.Fonts{
					Primary: &domain.FontFamily{
						Name: "Mapfre Sans",
						Variants: []domain.FontVariant{
							{Src: "fonts/A.woff2", Weight: 400, Style: "normal"},
						},
					},
					Fallback: "Arial, sans-serif",
				},
				Logos: map[string]string{"header": "logos/header.svg"},
			},
			"santander": {
				CustomerName: "Santander",
				Colors:       map[string]string{"primary": "#ec0000"},
				Fonts:        domain.Fonts{Fallback: "Helvetica, sans-serif"},
			},
		},
	}

	svc := service.NewThemeService(
		repo,
		cache.NewPassthrough[*domain.ResolvedTheme](),
		nil,
		"http://localhost:8000/static",
		"http://localhost:8000",
		slog.Default(),
	)

	return NewRouter(svc, health.NewHandler(), slog.Default(), RouterConfig{
		ServiceName: "theme",
		CORS:        middleware.DefaultCORSConfig(),
	})
}

func doRequest(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetTheme(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/theme/mapfre")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Success bool                 `json:"success"`
		Data    domain.ResolvedTheme `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, "Mapfre", body.Data.CustomerName)
	assert.Equal(t, "http://localhost:8000/static/logos/header.svg", body.Data.Logos["header"])
	assert.Equal(t, "http://localhost:8000/static/fonts/A.woff2", body.Data.Fonts.Primary.Variants[0].Src)
	assert.Equal(t, "http://localhost:8000/api/fonts/mapfre/fonts.css", body.Data.Fonts.CSSURL)
}

func TestGetTheme_CaseInsensitivePath(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/theme/MAPFRE")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTheme_NotFound(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/theme/unknown")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.False(t, body.Success)
	assert.Equal(t, "Brand not found", body.Error)
	assert.Equal(t, "The brand 'unknown' does not exist. Available brands: mapfre, santander", body.Detail)
}

func TestGetColors(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/theme/mapfre/colors")

	require.Equal(t, http.StatusOK, rec.Code)

	// Customer name and palette sit at the top level of the envelope, not
	// under a data field.
	assert.JSONEq(t, `{
		"success": true,
		"customerName": "Mapfre",
		"colors": {"primary": "#d81e05", "text": "#333333"}
	}`, rec.Body.String())
}

func TestGetFontCSS(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/fonts/mapfre/fonts.css")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "inline; filename=fonts-mapfre.css", rec.Header().Get("Content-Disposition"))

	css := rec.Body.String()
	assert.Contains(t, css, "@font-face")
	assert.Contains(t, css, "font-family: 'Mapfre Sans';")
	assert.Contains(t, css, "--font-fallback: Arial, sans-serif;")
}

func TestGetFontCSS_NotFound(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/fonts/unknown/fonts.css")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestListBrands(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/brands")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "brands": ["mapfre", "santander"]}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "theme-api"}`, rec.Body.String())
}

func TestHealthLive(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCorrelationIDHeader(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), "/api/brands")
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644))

	repo := &stubRepository{ids: []string{"mapfre"}}
	svc := service.NewThemeService(repo, cache.NewPassthrough[*domain.ResolvedTheme](), nil,
		"http://localhost:8000/static", "http://localhost:8000", slog.Default())

	router := NewRouter(svc, health.NewHandler(), slog.Default(), RouterConfig{
		ServiceName: "theme",
		StaticDir:   dir,
		CORS:        middleware.DefaultCORSConfig(),
	})

	rec := doRequest(t, router, "/static/logo.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<svg/>", rec.Body.String())
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))
}
