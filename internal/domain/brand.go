package domain

// BrandConfig is one brand's entry in brands.json. Every string leaf that is a
// relative path (logos, placeholder images, font variant sources) is rewritten
// into an absolute URL during resolution; the config itself is never mutated
// after load.
type BrandConfig struct {
	CustomerName string            `json:"customerName" validate:"required"`
	Colors       map[string]string `json:"colors" validate:"required,min=1"`
	Fonts        Fonts             `json:"fonts"`
	Logos        map[string]string `json:"logos"`
	Placeholders map[string]any    `json:"placeholders"`
}

// Fonts holds the brand's font configuration. Secondary is optional.
type Fonts struct {
	Primary   *FontFamily `json:"primary,omitempty"`
	Secondary *FontFamily `json:"secondary,omitempty"`
	Fallback  string      `json:"fallback" validate:"required"`
}

// FontFamily is a named family with its weight/style variants, in source order.
type FontFamily struct {
	Name     string        `json:"name" validate:"required"`
	Variants []FontVariant `json:"variants" validate:"dive"`
}

// FontVariant is a single font file. Src is a relative path in brands.json and
// an absolute URL after resolution. Weight follows the CSS range [1,1000].
type FontVariant struct {
	Src    string `json:"src" validate:"required"`
	Weight int    `json:"weight" validate:"gte=1,lte=1000"`
	Style  string `json:"style" validate:"oneof=normal italic"`
}

// BrandColors is the color-only view of a brand: the customer name plus the
// palette, nothing materialized.
type BrandColors struct {
	CustomerName string            `json:"customerName"`
	Colors       map[string]string `json:"colors"`
}

// ResolvedFonts is the fonts section of a resolved theme, extended with the
// URL of the dynamically generated @font-face stylesheet.
type ResolvedFonts struct {
	Primary   *FontFamily `json:"primary,omitempty"`
	Secondary *FontFamily `json:"secondary,omitempty"`
	Fallback  string      `json:"fallback"`
	CSSURL    string      `json:"cssUrl"`
}

// ResolvedTheme is a BrandConfig with every relative asset path replaced by an
// absolute URL. Instances are derived, disposable, and safe to cache: losing
// one only costs a recompute.
type ResolvedTheme struct {
	CustomerName string            `json:"customerName"`
	Colors       map[string]string `json:"colors"`
	Fonts        ResolvedFonts     `json:"fonts"`
	Logos        map[string]string `json:"logos"`
	Placeholders map[string]any    `json:"placeholders"`
}
