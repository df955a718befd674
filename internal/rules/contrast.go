package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrUnparsableColor is returned for colour strings that are not hex, rgb() or a known name.
	ErrUnparsableColor = errors.New("unparsable color")

	// ErrTransparent is returned for fully transparent colours, which have no
	// contrast of their own.
	ErrTransparent = errors.New("color is transparent")

	// ErrTranslucent is returned where an opaque colour is required.
	ErrTranslucent = errors.New("color is translucent")
)

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
	"gray":  "#808080",
	"grey":  "#808080",
}

// ParseColor accepts #rgb, #rrggbb, rgb(r, g, b), rgba(r, g, b, a) and a few
// basic colour names. Only opaque colours are accepted; a partially
// transparent colour returns ErrTranslucent.
func ParseColor(s string) (colorful.Color, error) {
	c, alpha, err := ParseColorAlpha(s)
	if err != nil {
		return colorful.Color{}, err
	}
	if alpha < 1 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrTranslucent, s)
	}
	return c, nil
}

// ParseColorAlpha is ParseColor keeping the alpha channel, in (0, 1].
// The alpha of rgba() may be a fraction or a percentage.
func ParseColorAlpha(s string) (colorful.Color, float64, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "transparent" {
		return colorful.Color{}, 0, ErrTransparent
	}
	if hex, ok := namedColors[raw]; ok {
		raw = hex
	}

	if strings.HasPrefix(raw, "#") {
		c, err := colorful.Hex(raw)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparsableColor, s)
		}
		return c, 1, nil
	}

	var body string
	switch {
	case strings.HasPrefix(raw, "rgba(") && strings.HasSuffix(raw, ")"):
		body = raw[len("rgba(") : len(raw)-1]
	case strings.HasPrefix(raw, "rgb(") && strings.HasSuffix(raw, ")"):
		body = raw[len("rgb(") : len(raw)-1]
	default:
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparsableColor, s)
	}

	parts := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) != 3 && len(parts) != 4 {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparsableColor, s)
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparsableColor, s)
		}
		ch[i] = v / 255
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := parseAlpha(parts[3])
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparsableColor, s)
		}
		if a == 0 {
			return colorful.Color{}, 0, ErrTransparent
		}
		alpha = a
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, alpha, nil
}

func parseAlpha(s string) (float64, error) {
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	v /= scale
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("alpha %v out of range", v)
	}
	return v, nil
}

// RelativeLuminance is the WCAG 2.x relative luminance of an sRGB colour.
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio computes the WCAG contrast ratio between two colours, in [1, 21].
// A translucent foreground is composited over the background first. The
// background must be opaque, since what lies beneath it is unknown.
func ContrastRatio(fg, bg string) (float64, error) {
	b, err := ParseColor(bg)
	if err != nil {
		return 0, fmt.Errorf("background: %w", err)
	}
	f, alpha, err := ParseColorAlpha(fg)
	if err != nil {
		return 0, fmt.Errorf("foreground: %w", err)
	}
	if alpha < 1 {
		f = b.BlendRgb(f, alpha)
	}
	l1, l2 := RelativeLuminance(f), RelativeLuminance(b)
	if l2 > l1 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05), nil
}
