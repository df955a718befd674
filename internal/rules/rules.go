// Package rules holds the declarative rule catalog of the design system.
// Each rule is a row of data with a predicate and a message builder; adding a
// rule means adding a row, never a new branch in the validator.
package rules

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gridkit/internal/grid"
)

// Category groups rules by the kind of observation they inspect.
type Category string

const (
	Spacing     Category = "spacing"
	TouchTarget Category = "touchTarget"
	LineLength  Category = "lineLength"
	Contrast    Category = "contrast"
	Animation   Category = "animation"
	ZIndex      Category = "zIndex"
)

// Categories lists every category in catalog order.
var Categories = []Category{Spacing, TouchTarget, LineLength, Contrast, ZIndex, Animation}

// Severity ranks a finding. Lower values are more important.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeveritySuggestion
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeveritySuggestion:
		return "suggestion"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Subject is the normalized form of one observed property, as rules see it.
// Only the fields relevant to the rule's category are populated.
type Subject struct {
	Property string
	Element  string
	Raw      string

	// Spacing: each shorthand component in pixels. Keywords is indexed like
	// Lengths; a non-empty entry marks a keyword component (auto) whose
	// length is ignored and which is echoed unchanged in the suggestion.
	Lengths  []float64
	Keywords []string

	// Touch target geometry.
	Width  float64
	Height float64

	// Characters per line.
	Chars int

	// Contrast ratio between foreground and background.
	Ratio     float64
	LargeText bool

	ZIndex   int
	Duration time.Duration
}

// Rule is one immutable catalog row.
type Rule struct {
	ID       string
	Category Category
	Severity Severity

	// Violated reports whether the subject breaks the rule.
	Violated func(Subject) bool

	// Message renders the remediation text, embedding the observed and
	// suggested values.
	Message func(Subject) string
}

// Finding is a rule violation produced by Evaluate.
type Finding struct {
	RuleID   string
	Category Category
	Severity Severity
	Message  string
}

// Thresholds parameterizes the catalog.
type Thresholds struct {
	TouchMinimum       float64 `yaml:"touch_minimum" json:"touch_minimum"`
	TouchRecommended   float64 `yaml:"touch_recommended" json:"touch_recommended"`
	LineMinChars       int     `yaml:"line_min_chars" json:"line_min_chars"`
	LineMaxChars       int     `yaml:"line_max_chars" json:"line_max_chars"`
	ContrastNormal     float64 `yaml:"contrast_normal" json:"contrast_normal"`
	ContrastLarge      float64 `yaml:"contrast_large" json:"contrast_large"`
	ZLayers            []int   `yaml:"z_layers" json:"z_layers"`
	AnimationMinMillis int     `yaml:"animation_min_ms" json:"animation_min_ms"`
	AnimationMaxMillis int     `yaml:"animation_max_ms" json:"animation_max_ms"`
}

// DefaultThresholds returns the design-system defaults (WCAG AA, 44/48px targets).
// The layer scale is the utility 0-50 range plus the overlay tiers: dropdown
// 1000, sticky 1020, fixed 1030, backdrop 1040, modal 1050, popover 1060,
// tooltip 1070, toast 1080 and 9999 for development overlays.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TouchMinimum:       44,
		TouchRecommended:   48,
		LineMinChars:       45,
		LineMaxChars:       75,
		ContrastNormal:     4.5,
		ContrastLarge:      3.0,
		ZLayers:            []int{0, 10, 20, 30, 40, 50, 1000, 1020, 1030, 1040, 1050, 1060, 1070, 1080, 9999},
		AnimationMinMillis: 100,
		AnimationMaxMillis: 500,
	}
}

// Catalog is the ordered, immutable rule table.
type Catalog struct {
	rules []Rule
}

// NewCatalog builds the rule table for a grid and a set of thresholds.
func NewCatalog(g grid.Model, th Thresholds) Catalog {
	layers := append([]int(nil), th.ZLayers...)
	minDur := time.Duration(th.AnimationMinMillis) * time.Millisecond
	maxDur := time.Duration(th.AnimationMaxMillis) * time.Millisecond

	return Catalog{rules: []Rule{
		{
			ID:       "spacing.grid",
			Category: Spacing,
			Severity: SeverityError,
			Violated: func(s Subject) bool {
				for i, v := range s.Lengths {
					if s.keyword(i) == "" && !g.IsOnGrid(v) {
						return true
					}
				}
				return false
			},
			Message: func(s Subject) string {
				parts := make([]string, len(s.Lengths))
				for i, v := range s.Lengths {
					switch {
					case s.keyword(i) != "":
						parts[i] = s.keyword(i)
					case g.IsOnGrid(v):
						parts[i] = grid.Px(v)
					default:
						parts[i] = grid.Px(g.NearestOnGrid(v))
					}
				}
				return SpacingMessage(s.Property, s.Raw, g.Unit, strings.Join(parts, " "))
			},
		},
		{
			ID:       "touch.minimum",
			Category: TouchTarget,
			Severity: SeverityError,
			Violated: func(s Subject) bool {
				return math.Min(s.Width, s.Height) < th.TouchMinimum
			},
			Message: func(s Subject) string {
				return fmt.Sprintf("%s touch target %sx%s is too small: below the %s minimum; use at least %s",
					label(s), grid.FormatPixels(s.Width), grid.Px(s.Height),
					grid.Px(th.TouchMinimum), grid.Px(th.TouchRecommended))
			},
		},
		{
			ID:       "touch.recommended",
			Category: TouchTarget,
			Severity: SeveritySuggestion,
			Violated: func(s Subject) bool {
				m := math.Min(s.Width, s.Height)
				return m >= th.TouchMinimum && m < th.TouchRecommended
			},
			Message: func(s Subject) string {
				return fmt.Sprintf("%s touch target %sx%s meets the %s minimum; consider %s",
					label(s), grid.FormatPixels(s.Width), grid.Px(s.Height),
					grid.Px(th.TouchMinimum), grid.Px(th.TouchRecommended))
			},
		},
		{
			ID:       "line.short",
			Category: LineLength,
			Severity: SeverityError,
			Violated: func(s Subject) bool { return s.Chars < th.LineMinChars },
			Message: func(s Subject) string {
				return fmt.Sprintf("%s line length of %d characters is too short; use %d-%d characters per line",
					label(s), s.Chars, th.LineMinChars, th.LineMaxChars)
			},
		},
		{
			ID:       "line.long",
			Category: LineLength,
			Severity: SeverityError,
			Violated: func(s Subject) bool { return s.Chars > th.LineMaxChars },
			Message: func(s Subject) string {
				return fmt.Sprintf("%s line length of %d characters is too long; use %d-%d characters per line",
					label(s), s.Chars, th.LineMinChars, th.LineMaxChars)
			},
		},
		{
			ID:       "contrast.minimum",
			Category: Contrast,
			Severity: SeverityError,
			Violated: func(s Subject) bool {
				return s.Ratio < contrastThreshold(th, s.LargeText)
			},
			Message: func(s Subject) string {
				size := "normal"
				if s.LargeText {
					size = "large"
				}
				want := contrastThreshold(th, s.LargeText)
				return fmt.Sprintf("%s contrast ratio %.2f:1 is below %s:1 for %s text; use at least %s:1",
					label(s), s.Ratio, grid.FormatPixels(want), size, grid.FormatPixels(want))
			},
		},
		{
			ID:       "zindex.layer",
			Category: ZIndex,
			Severity: SeverityWarning,
			Violated: func(s Subject) bool {
				for _, l := range layers {
					if l == s.ZIndex {
						return false
					}
				}
				return len(layers) > 0
			},
			Message: func(s Subject) string {
				return fmt.Sprintf("%s z-index %d is not on the layer scale %v; use %d",
					label(s), s.ZIndex, layers, nearestLayer(layers, s.ZIndex))
			},
		},
		{
			ID:       "animation.range",
			Category: Animation,
			Severity: SeverityWarning,
			Violated: func(s Subject) bool {
				if s.Duration == 0 {
					return false
				}
				return s.Duration < minDur || s.Duration > maxDur
			},
			Message: func(s Subject) string {
				want := minDur
				if s.Duration > maxDur {
					want = maxDur
				}
				return fmt.Sprintf("%s %s %s is outside %s-%s; use %s",
					label(s), s.Property, s.Duration, minDur, maxDur, want)
			},
		},
	}}
}

// Default returns the catalog for the 8px grid and default thresholds.
func Default() Catalog {
	return NewCatalog(grid.Default(), DefaultThresholds())
}

// Rules returns a copy of the table in declaration order.
func (c Catalog) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// ForCategory returns the rules of one category in table order.
func (c Catalog) ForCategory(cat Category) []Rule {
	var out []Rule
	for _, r := range c.rules {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}

// Evaluate runs every rule of the category against the subject. Each rule
// yields at most one finding; no rule short-circuits another.
func (c Catalog) Evaluate(cat Category, s Subject) []Finding {
	var out []Finding
	for _, r := range c.ForCategory(cat) {
		if !r.Violated(s) {
			continue
		}
		out = append(out, Finding{
			RuleID:   r.ID,
			Category: r.Category,
			Severity: r.Severity,
			Message:  r.Message(s),
		})
	}
	return out
}

// SpacingMessage renders a grid violation. The advisor parses this shape back
// out of result buckets, so the wording is load-bearing.
func SpacingMessage(property, raw string, unit float64, suggestion string) string {
	return fmt.Sprintf("%s: %s is off the %s grid; use %s", property, raw, grid.Px(unit), suggestion)
}

func contrastThreshold(th Thresholds, large bool) float64 {
	if large {
		return th.ContrastLarge
	}
	return th.ContrastNormal
}

func nearestLayer(layers []int, z int) int {
	if len(layers) == 0 {
		return z
	}
	best := layers[0]
	for _, l := range layers[1:] {
		if abs(l-z) <= abs(best-z) {
			best = l
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (s Subject) keyword(i int) string {
	if i < len(s.Keywords) {
		return s.Keywords[i]
	}
	return ""
}

func label(s Subject) string {
	if s.Element != "" {
		return s.Element
	}
	return "element"
}
