// Package color rewrites theme values that are CSS colors into one notation
package color

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Format is a target color notation
type Format string

const (
	// FormatKeep leaves values as written
	FormatKeep Format = ""
	// FormatHex writes #rrggbb, or #rrggbbaa for translucent colors
	FormatHex Format = "hex"
	// FormatRGB writes rgb() or rgba()
	FormatRGB Format = "rgb"
	// FormatHSL writes hsl() or hsla()
	FormatHSL Format = "hsl"
)

// ParseFormat converts a configuration string to a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatKeep, FormatHex, FormatRGB, FormatHSL:
		return f, nil
	case "keep", "none":
		return FormatKeep, nil
	default:
		return FormatKeep, fmt.Errorf("unknown color format %q: expected hex, rgb or hsl", s)
	}
}

// colorLikeRegexp matches hex colors, color keywords and color functions.
// csscolorparser also accepts bare hex digits, which would turn numbers
// like "123" into colors.
var (
	colorLikeRegexp = regexp.MustCompile(`^(#[0-9a-fA-F]+|[a-zA-Z]+|(rgba?|hsla?|hwba?|lab|lch|oklab|oklch)\([^()]*\))$`)
	bareHexRegexp   = regexp.MustCompile(`^[0-9a-fA-F]+$`)
)

// Normalize returns value in the given notation when the whole value is a
// CSS color. Anything else, including values using var(), is returned
// unchanged.
func Normalize(value string, format Format) string {
	if format == FormatKeep {
		return value
	}
	trimmed := strings.TrimSpace(value)
	if !colorLikeRegexp.MatchString(trimmed) || bareHexRegexp.MatchString(trimmed) {
		return value
	}
	parsed, err := csscolorparser.Parse(trimmed)
	if err != nil {
		return value
	}

	switch format {
	case FormatHex:
		return toHex(parsed)
	case FormatRGB:
		return toRGB(parsed)
	case FormatHSL:
		return toHSL(parsed)
	default:
		return value
	}
}

func channels(c csscolorparser.Color) (int, int, int) {
	r := math.Max(0, math.Min(1, c.R))
	g := math.Max(0, math.Min(1, c.G))
	b := math.Max(0, math.Min(1, c.B))
	return int(math.Round(r * 255)), int(math.Round(g * 255)), int(math.Round(b * 255))
}

func opaque(c csscolorparser.Color) bool {
	return c.A >= 0.999
}

func toHex(c csscolorparser.Color) string {
	r, g, b := channels(c)
	if opaque(c) {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	a := int(math.Round(math.Max(0, c.A) * 255))
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

func toRGB(c csscolorparser.Color) string {
	r, g, b := channels(c)
	if opaque(c) {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(c.A))
}

func toHSL(c csscolorparser.Color) string {
	h, s, l := rgbToHSL(c.R, c.G, c.B)
	if opaque(c) {
		return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", h, s*100, l*100)
	}
	return fmt.Sprintf("hsla(%.1f, %.1f%%, %.1f%%, %s)", h, s*100, l*100, formatAlpha(c.A))
}

// rgbToHSL converts channels in 0-1 to hue in degrees and saturation and
// lightness in 0-1
func rgbToHSL(r, g, b float64) (float64, float64, float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2
	if maxC == minC {
		return 0, 0, l
	}

	d := maxC - minC
	s := d / (1 - math.Abs(2*l-1))
	var h float64
	switch maxC {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, l
}

// formatAlpha prints alpha with at most two decimals and no trailing zeros
func formatAlpha(a float64) string {
	s := fmt.Sprintf("%.2f", math.Max(0, math.Min(1, a)))
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
