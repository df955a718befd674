// Package advisor turns grid violations into concrete replacement values.
// All numeric reasoning stays in the grid package; the advisor only
// normalizes units and reshapes text.
package advisor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gridkit/internal/grid"
	"gridkit/internal/validator"
)

// Advisor proposes on-grid replacements.
type Advisor struct {
	grid    grid.Model
	basePx  float64
	enabled bool
}

// New creates an advisor. basePx resolves rem/em values; zero means 16px.
func New(g grid.Model, basePx float64, enabled bool) *Advisor {
	if basePx <= 0 {
		basePx = grid.DefaultBaseFontSize
	}
	return &Advisor{grid: g, basePx: basePx, enabled: enabled}
}

// Default returns an enabled advisor for the 8px grid.
func Default() *Advisor {
	return New(grid.Default(), grid.DefaultBaseFontSize, true)
}

// Enabled reports whether auto-fix output is switched on.
func (a *Advisor) Enabled() bool {
	return a.enabled
}

// SuggestPixels returns the nearest on-grid magnitude for v. Negative values
// have no on-grid replacement and return grid.ErrNegative.
func (a *Advisor) SuggestPixels(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", grid.ErrUnparsable, v)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s", grid.ErrNegative, grid.Px(v))
	}
	if v == 0 {
		return 0, nil
	}
	if a.grid.IsOnGrid(v) {
		return v, nil
	}
	return a.grid.NearestOnGrid(v), nil
}

// Advice is the outcome of checking one CSS length or shorthand.
type Advice struct {
	Value       string
	Replacement string
	OnGrid      bool

	// Tokens names the spacing scale key of each replaced component, or ""
	// when the replacement is not a scale value. Keyword components are "".
	Tokens []string
}

// Advise checks a CSS length or shorthand and computes its on-grid
// replacement in pixels. Components already on grid are kept; keyword
// components ("auto") are echoed unchanged.
func (a *Advisor) Advise(value string) (Advice, error) {
	ls, err := grid.ParseLengths(value)
	if err != nil {
		return Advice{}, fmt.Errorf("suggest %q: %w", value, err)
	}
	scale := a.grid.Scale()
	adv := Advice{Value: strings.TrimSpace(value), OnGrid: true, Tokens: make([]string, len(ls))}
	parts := make([]string, len(ls))
	for i, l := range ls {
		if l.IsKeyword() {
			parts[i] = l.Keyword
			continue
		}
		px := l.Pixels(a.basePx)
		if !a.grid.IsOnGrid(px) {
			adv.OnGrid = false
		}
		fixed, err := a.SuggestPixels(px)
		if err != nil {
			return Advice{}, fmt.Errorf("suggest %q: %w", value, err)
		}
		parts[i] = grid.Px(fixed)
		if step, ok := scale.Nearest(fixed); ok && step.Value == fixed {
			adv.Tokens[i] = strconv.FormatFloat(step.Key, 'f', -1, 64)
		}
	}
	adv.Replacement = strings.Join(parts, " ")
	return adv, nil
}

// Suggest returns the on-grid replacement for a CSS length or shorthand,
// in pixels. Components that are already on grid are kept.
func (a *Advisor) Suggest(value string) (string, error) {
	adv, err := a.Advise(value)
	if err != nil {
		return "", err
	}
	return adv.Replacement, nil
}

// spacingPattern matches messages built by rules.SpacingMessage.
var spacingPattern = regexp.MustCompile(`^(.+?): (.+) is off the \S+ grid; use (.+)$`)

// Fix is a remediation extracted from a grid violation.
type Fix struct {
	Property string
	From     string
	To       string
}

func (f Fix) String() string {
	return fmt.Sprintf("Change %s from %s to %s", f.Property, f.From, f.To)
}

// Fixes extracts the grid violations from the errors bucket, in order.
func (a *Advisor) Fixes(r validator.Result) []Fix {
	if !a.enabled {
		return nil
	}
	var out []Fix
	for _, msg := range r.Errors {
		m := spacingPattern.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		out = append(out, Fix{Property: m[1], From: m[2], To: m[3]})
	}
	return out
}

// Explain rewrites every grid violation as a standalone instruction. The
// suggested value is taken from the message; nothing is recomputed.
func (a *Advisor) Explain(r validator.Result) []string {
	fixes := a.Fixes(r)
	if len(fixes) == 0 {
		return nil
	}
	out := make([]string, len(fixes))
	for i, f := range fixes {
		out[i] = f.String()
	}
	return out
}
