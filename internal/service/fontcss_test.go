package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darwin-elegiga/backend-theme/internal/domain"
)

func resolvedMapfre() *domain.ResolvedTheme {
	return &domain.ResolvedTheme{
		CustomerName: "Mapfre",
		Colors:       map[string]string{"primary": "#d81e05"},
		Fonts: domain.ResolvedFonts{
			Primary: &domain.FontFamily{
				Name: "Mapfre Sans",
				Variants: []domain.FontVariant{
					{Src: "http://localhost:8000/static/fonts/A.woff2", Weight: 400, Style: "normal"},
					{Src: "http://localhost:8000/static/fonts/A-Bold.woff2", Weight: 700, Style: "normal"},
				},
			},
			Secondary: &domain.FontFamily{
				Name: "Mapfre Serif",
				Variants: []domain.FontVariant{
					{Src: "http://localhost:8000/static/fonts/B.woff", Weight: 400, Style: "italic"},
				},
			},
			Fallback: "Arial, sans-serif",
			CSSURL:   "http://localhost:8000/api/fonts/mapfre/fonts.css",
		},
	}
}

func TestRenderFontCSS_OneBlockPerVariant(t *testing.T) {
	css := RenderFontCSS(resolvedMapfre())
	assert.Equal(t, 3, strings.Count(css, "@font-face"))
}

func TestRenderFontCSS_Deterministic(t *testing.T) {
	theme := resolvedMapfre()
	assert.Equal(t, RenderFontCSS(theme), RenderFontCSS(theme))
}

func TestRenderFontCSS_VariantProperties(t *testing.T) {
	css := RenderFontCSS(resolvedMapfre())

	assert.Contains(t, css, "font-family: 'Mapfre Sans';")
	assert.Contains(t, css, "src: url('http://localhost:8000/static/fonts/A.woff2') format('woff2');")
	assert.Contains(t, css, "font-weight: 400;")
	assert.Contains(t, css, "font-weight: 700;")
	assert.Contains(t, css, "font-style: italic;")
	assert.Contains(t, css, "font-display: swap;")

	// .woff source gets the woff hint, not woff2.
	assert.Contains(t, css, "src: url('http://localhost:8000/static/fonts/B.woff') format('woff');")
}

func TestRenderFontCSS_UnknownExtensionOmitsFormatHint(t *testing.T) {
	theme := &domain.ResolvedTheme{
		CustomerName: "Aegon",
		Fonts: domain.ResolvedFonts{
			Primary: &domain.FontFamily{
				Name: "AegonSans",
				Variants: []domain.FontVariant{
					{Src: "http://host/static/fonts/a.ttf", Weight: 400, Style: "normal"},
				},
			},
			Fallback: "Georgia, serif",
		},
	}

	css := RenderFontCSS(theme)
	assert.Contains(t, css, "src: url('http://host/static/fonts/a.ttf');\n")
	assert.NotContains(t, css, "format(")
}

func TestRenderFontCSS_RootBlock(t *testing.T) {
	css := RenderFontCSS(resolvedMapfre())

	require.Contains(t, css, ":root {")
	assert.Contains(t, css, "--font-primary: 'Mapfre Sans', Arial, sans-serif;")
	assert.Contains(t, css, "--font-secondary: 'Mapfre Serif', Arial, sans-serif;")
	assert.Contains(t, css, "--font-fallback: Arial, sans-serif;")
}

func TestRenderFontCSS_NoSecondary(t *testing.T) {
	theme := resolvedMapfre()
	theme.Fonts.Secondary = nil

	css := RenderFontCSS(theme)
	assert.Equal(t, 2, strings.Count(css, "@font-face"))
	assert.NotContains(t, css, "--font-secondary")
}

func TestRenderFontCSS_FallbackOnly(t *testing.T) {
	theme := &domain.ResolvedTheme{
		CustomerName: "Aegon",
		Fonts:        domain.ResolvedFonts{Fallback: "Georgia, serif"},
	}

	css := RenderFontCSS(theme)
	assert.NotContains(t, css, "@font-face")
	assert.Contains(t, css, "--font-primary: Georgia, serif;")
	assert.Contains(t, css, "--font-fallback: Georgia, serif;")
}

func TestRenderFontCSS_BlockOrderFollowsConfiguration(t *testing.T) {
	css := RenderFontCSS(resolvedMapfre())

	regular := strings.Index(css, "A.woff2")
	bold := strings.Index(css, "A-Bold.woff2")
	secondary := strings.Index(css, "B.woff")
	root := strings.Index(css, ":root")

	assert.Less(t, regular, bold)
	assert.Less(t, bold, secondary)
	assert.Less(t, secondary, root)
}
