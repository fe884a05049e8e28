// Package service implements theme resolution on top of the brand repository:
// URL materialization, font CSS rendering, caching and brand code resolution.
package service

import (
	"context"
	"log/slog"

	"github.com/darwin-elegiga/backend-theme/internal/cache"
	"github.com/darwin-elegiga/backend-theme/internal/domain"
	"github.com/darwin-elegiga/backend-theme/internal/repository"
	"github.com/darwin-elegiga/backend-theme/pkg/logger"
)

// CodeResolver maps an opaque access code to a brand identifier. Implemented
// by the verification API client; nil disables code resolution entirely.
type CodeResolver interface {
	ResolveCode(ctx context.Context, code string) (string, error)
}

// ThemeService resolves brand configurations into client-ready themes.
type ThemeService struct {
	repo           repository.BrandRepository
	cache          cache.Cache[*domain.ResolvedTheme]
	codes          CodeResolver
	staticBaseURL  string
	fontCSSBaseURL string
	logger         *slog.Logger
}

// NewThemeService creates a theme service. codes may be nil when no
// verification API is configured.
func NewThemeService(
	repo repository.BrandRepository,
	c cache.Cache[*domain.ResolvedTheme],
	codes CodeResolver,
	staticBaseURL, fontCSSBaseURL string,
	log *slog.Logger,
) *ThemeService {
	return &ThemeService{
		repo:           repo,
		cache:          c,
		codes:          codes,
		staticBaseURL:  staticBaseURL,
		fontCSSBaseURL: fontCSSBaseURL,
		logger:         log,
	}
}

// Resolve returns the fully materialized theme for brandID. Results are
// cached per brand and base URL, so a base URL change after a restart can
// never serve stale absolute URLs. Lookup failures are returned, never
// cached.
func (s *ThemeService) Resolve(ctx context.Context, brandID string) (*domain.ResolvedTheme, error) {
	key := brandID + "|" + s.staticBaseURL

	return s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (*domain.ResolvedTheme, error) {
		cfg, err := s.repo.Get(ctx, brandID)
		if err != nil {
			return nil, err
		}

		cssURL := domain.JoinURL(s.fontCSSBaseURL, "api/fonts/"+brandID+"/fonts.css")
		theme, err := domain.ResolveBrand(cfg, s.staticBaseURL, cssURL)
		if err != nil {
			s.logger.ErrorContext(ctx, "theme materialization failed",
				slog.String("brand_id", brandID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}

		logger.FromContext(ctx).DebugContext(ctx, "theme resolved",
			slog.String("brand_id", brandID),
		)
		return theme, nil
	})
}

// Colors returns the customer name and color palette of the brand's theme.
func (s *ThemeService) Colors(ctx context.Context, brandID string) (*domain.BrandColors, error) {
	theme, err := s.Resolve(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return &domain.BrandColors{
		CustomerName: theme.CustomerName,
		Colors:       theme.Colors,
	}, nil
}

// FontCSS renders the @font-face stylesheet for the brand's theme.
func (s *ThemeService) FontCSS(ctx context.Context, brandID string) (string, error) {
	theme, err := s.Resolve(ctx, brandID)
	if err != nil {
		return "", err
	}
	return RenderFontCSS(theme), nil
}

// Brands returns all configured brand identifiers in declaration order.
func (s *ThemeService) Brands() []string {
	return s.repo.IDs()
}

// ResolveBrandID maps an incoming path identifier to a brand identifier. A
// known brand ID is returned unchanged. Anything else is treated as an access
// code and resolved through the verification API; when that is disabled or
// fails, the identifier passes through untouched and the subsequent lookup
// reports it as an unknown brand.
func (s *ThemeService) ResolveBrandID(ctx context.Context, id string) string {
	if _, err := s.repo.Get(ctx, id); err == nil {
		return id
	}
	if s.codes == nil {
		return id
	}

	brandID, err := s.codes.ResolveCode(ctx, id)
	if err != nil {
		s.logger.DebugContext(ctx, "code resolution failed, treating as brand id",
			slog.String("code", id),
			slog.String("error", err.Error()),
		)
		return id
	}
	return brandID
}
