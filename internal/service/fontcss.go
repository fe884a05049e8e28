package service

import (
	"fmt"
	"strings"

	"github.com/darwin-elegiga/backend-theme/internal/domain"
)

// RenderFontCSS renders the @font-face stylesheet for a resolved theme. The
// output is fully deterministic: variant order follows the configuration, and
// nothing volatile (timestamps, IDs) is embedded, so responses are safe to
// cache by URL.
func RenderFontCSS(theme *domain.ResolvedTheme) string {
	var b strings.Builder

	fmt.Fprintf(&b, "/* Fonts for %s */\n", theme.CustomerName)

	writeFontFaces(&b, theme.Fonts.Primary)
	writeFontFaces(&b, theme.Fonts.Secondary)

	b.WriteString("\n:root {\n")
	if theme.Fonts.Primary != nil {
		fmt.Fprintf(&b, "  --font-primary: '%s', %s;\n", theme.Fonts.Primary.Name, theme.Fonts.Fallback)
	} else {
		fmt.Fprintf(&b, "  --font-primary: %s;\n", theme.Fonts.Fallback)
	}
	if theme.Fonts.Secondary != nil {
		fmt.Fprintf(&b, "  --font-secondary: '%s', %s;\n", theme.Fonts.Secondary.Name, theme.Fonts.Fallback)
	}
	fmt.Fprintf(&b, "  --font-fallback: %s;\n", theme.Fonts.Fallback)
	b.WriteString("}\n")

	return b.String()
}

func writeFontFaces(b *strings.Builder, family *domain.FontFamily) {
	if family == nil {
		return
	}
	for _, v := range family.Variants {
		b.WriteString("\n@font-face {\n")
		fmt.Fprintf(b, "  font-family: '%s';\n", family.Name)
		fmt.Fprintf(b, "  src: url('%s')%s;\n", v.Src, formatHint(v.Src))
		fmt.Fprintf(b, "  font-weight: %d;\n", v.Weight)
		fmt.Fprintf(b, "  font-style: %s;\n", v.Style)
		b.WriteString("  font-display: swap;\n")
		b.WriteString("}\n")
	}
}

// formatHint infers the src format hint from the file extension. Formats
// other than woff2/woff get no hint and the browser sniffs the file.
func formatHint(src string) string {
	switch {
	case strings.HasSuffix(src, ".woff2"):
		return " format('woff2')"
	case strings.HasSuffix(src, ".woff"):
		return " format('woff')"
	default:
		return ""
	}
}
