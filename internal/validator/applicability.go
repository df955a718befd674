package validator

import (
	"strings"

	"gridkit/internal/rules"
)

var spacingPrefixes = []string{"padding", "margin", "gap", "row-gap", "column-gap", "inset"}

var textElements = map[string]bool{
	"p": true, "span": true, "li": true, "label": true, "blockquote": true,
	"figcaption": true, "td": true, "th": true, "dd": true, "dt": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"a": true, "small": true, "strong": true, "em": true, "caption": true,
	"text": true, "article": true,
}

// IsSpacingProperty reports whether a property is padding, margin or gap-like.
func IsSpacingProperty(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range spacingPrefixes {
		if n == p || strings.HasPrefix(n, p+"-") {
			return true
		}
	}
	return false
}

// IsInteractive reports whether touch-target rules apply to the element:
// a button, or any element carrying a role other than presentation. Inline
// links and form fields without a role are left to their own sizing.
func IsInteractive(element, role string) bool {
	switch strings.ToLower(role) {
	case "":
	case "presentation", "none":
		return false
	default:
		return true
	}
	return strings.EqualFold(element, "button")
}

// IsTextBearing reports whether line-length rules apply. An unnamed element
// is assumed to carry text.
func IsTextBearing(element string) bool {
	if element == "" {
		return true
	}
	return textElements[strings.ToLower(element)]
}

func isLineLengthProperty(name string) bool {
	switch strings.ToLower(name) {
	case "line-length", "characters-per-line":
		return true
	}
	return false
}

func isDurationProperty(name string) bool {
	switch strings.ToLower(name) {
	case "transition-duration", "animation-duration":
		return true
	}
	return false
}

func applies(cat rules.Category, p ObservedProperty) bool {
	switch cat {
	case rules.Spacing:
		return IsSpacingProperty(p.Property)
	case rules.TouchTarget:
		return p.Box != nil && IsInteractive(p.Element, p.Role)
	case rules.LineLength:
		return isLineLengthProperty(p.Property) && IsTextBearing(p.Element)
	case rules.Contrast:
		return p.Foreground != "" && p.Background != ""
	case rules.ZIndex:
		return strings.EqualFold(p.Property, "z-index")
	case rules.Animation:
		return isDurationProperty(p.Property)
	}
	return false
}
