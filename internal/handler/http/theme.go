package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/darwin-elegiga/backend-theme/internal/domain"
	"github.com/darwin-elegiga/backend-theme/internal/service"
	"github.com/darwin-elegiga/backend-theme/pkg/httputil"
	"github.com/darwin-elegiga/backend-theme/pkg/logger"
)

// ThemeHandler handles HTTP requests for theme endpoints.
type ThemeHandler struct {
	service *service.ThemeService
	logger  *slog.Logger
}

// NewThemeHandler creates a new theme HTTP handler.
func NewThemeHandler(svc *service.ThemeService, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{
		service: svc,
		logger:  logger,
	}
}

// brandsResponse is the envelope for the brand listing endpoint.
type brandsResponse struct {
	Success bool     `json:"success"`
	Brands  []string `json:"brands"`
}

// colorsResponse is the envelope for the colors endpoint: customer name and
// palette at the top level, not wrapped in a data field.
type colorsResponse struct {
	Success      bool              `json:"success"`
	CustomerName string            `json:"customerName"`
	Colors       map[string]string `json:"colors"`
}

// brandID extracts the {code} path parameter, normalizes it and resolves
// access codes to brand identifiers. Brand identifiers are lowercase by
// convention, so the incoming value is lowercased before lookup.
func (h *ThemeHandler) brandID(r *http.Request) (*http.Request, string) {
	code := strings.ToLower(chi.URLParam(r, "code"))
	id := h.service.ResolveBrandID(r.Context(), code)

	ctx := logger.WithBrandID(r.Context(), id)
	return r.WithContext(ctx), id
}

// GetTheme handles GET /api/theme/{code}.
func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	r, id := h.brandID(r)

	theme, err := h.service.Resolve(r.Context(), id)
	if err != nil {
		h.writeThemeError(w, r, err)
		return
	}
	httputil.WriteData(w, theme)
}

// GetColors handles GET /api/theme/{code}/colors.
func (h *ThemeHandler) GetColors(w http.ResponseWriter, r *http.Request) {
	r, id := h.brandID(r)

	colors, err := h.service.Colors(r.Context(), id)
	if err != nil {
		h.writeThemeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, colorsResponse{
		Success:      true,
		CustomerName: colors.CustomerName,
		Colors:       colors.Colors,
	})
}

// GetFontCSS handles GET /api/fonts/{code}/fonts.css. The stylesheet is
// served inline with a public cache policy so browsers and CDNs can hold it.
func (h *ThemeHandler) GetFontCSS(w http.ResponseWriter, r *http.Request) {
	r, id := h.brandID(r)

	css, err := h.service.FontCSS(r.Context(), id)
	if err != nil {
		h.writeThemeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=fonts-%s.css", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(css))
}

// ListBrands handles GET /api/brands.
func (h *ThemeHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, brandsResponse{
		Success: true,
		Brands:  h.service.Brands(),
	})
}

// HealthCheck handles GET /api/health, the flat health probe the storefront
// polls. Deeper per-dependency checks live under /health/ready.
func (h *ThemeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "theme-api",
	})
}

func (h *ThemeHandler) writeThemeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *domain.BrandNotFoundError
	if errors.As(err, &notFound) {
		httputil.WriteErrorMessage(w, http.StatusNotFound, "Brand not found", notFound.Detail())
		return
	}
	httputil.WriteError(w, r, err, h.logger)
}
