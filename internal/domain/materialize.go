package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// IsAbsoluteURL reports whether s already carries a URL scheme and must pass
// through materialization unchanged.
func IsAbsoluteURL(s string) bool {
	return strings.Contains(s, "://")
}

// JoinURL concatenates base and path with exactly one separating slash.
// Absolute URLs pass through untouched, so materializing an already-resolved
// value is a no-op rather than a double prefix.
func JoinURL(base, path string) string {
	if IsAbsoluteURL(path) {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// MaterializeTree rewrites every string leaf of an arbitrarily nested
// configuration value into an absolute URL against base. Maps and slices are
// rebuilt (the input is never mutated); numbers, booleans, and nil pass
// through. The function is pure: the same input always yields the same
// output, which is what makes caching resolved themes safe.
func MaterializeTree(value any, base string) (any, error) {
	return materializeAt("$", value, base)
}

func materializeAt(path string, value any, base string) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return JoinURL(base, v), nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			resolved, err := materializeAt(path+"."+key, child, base)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			resolved, err := materializeAt(path+"["+strconv.Itoa(i)+"]", child, base)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case bool, float64, int, int64, json.Number:
		return v, nil
	default:
		return nil, &MaterializationError{Path: path, Value: v}
	}
}

// ResolveBrand materializes a BrandConfig into a ResolvedTheme: every logo,
// placeholder, and font variant path becomes an absolute URL against base,
// and cssURL is attached as fonts.cssUrl. The input config is left untouched.
func ResolveBrand(cfg *BrandConfig, base, cssURL string) (*ResolvedTheme, error) {
	logos := make(map[string]string, len(cfg.Logos))
	for role, path := range cfg.Logos {
		logos[role] = JoinURL(base, path)
	}

	placeholders, err := MaterializeTree(cfg.Placeholders, base)
	if err != nil {
		return nil, err
	}
	resolvedPlaceholders, _ := placeholders.(map[string]any)

	colors := make(map[string]string, len(cfg.Colors))
	for role, value := range cfg.Colors {
		colors[role] = value
	}

	return &ResolvedTheme{
		CustomerName: cfg.CustomerName,
		Colors:       colors,
		Fonts: ResolvedFonts{
			Primary:   materializeFamily(cfg.Fonts.Primary, base),
			Secondary: materializeFamily(cfg.Fonts.Secondary, base),
			Fallback:  cfg.Fonts.Fallback,
			CSSURL:    cssURL,
		},
		Logos:        logos,
		Placeholders: resolvedPlaceholders,
	}, nil
}

func materializeFamily(family *FontFamily, base string) *FontFamily {
	if family == nil {
		return nil
	}
	out := &FontFamily{
		Name:     family.Name,
		Variants: make([]FontVariant, len(family.Variants)),
	}
	for i, v := range family.Variants {
		out.Variants[i] = FontVariant{
			Src:    JoinURL(base, v.Src),
			Weight: v.Weight,
			Style:  v.Style,
		}
	}
	return out
}
