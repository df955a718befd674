// Package validator applies the rule catalog and the grid model to observed
// element properties. Validate is pure: it reads nothing but its input and
// writes nothing but its return value.
package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gridkit/internal/grid"
	"gridkit/internal/rules"
)

// Options selects which rule categories run.
type Options struct {
	ValidateSpacing       bool    `yaml:"validate_spacing" json:"validate_spacing"`
	ValidateAccessibility bool    `yaml:"validate_accessibility" json:"validate_accessibility"`
	ValidateTouchTargets  bool    `yaml:"validate_touch_targets" json:"validate_touch_targets"`
	ValidateLayering      bool    `yaml:"validate_layering" json:"validate_layering"`
	ValidateMotion        bool    `yaml:"validate_motion" json:"validate_motion"`
	BaseFontSize          float64 `yaml:"base_font_size" json:"base_font_size"`
}

// DefaultOptions enables every category with a 16px root font size.
func DefaultOptions() Options {
	return Options{
		ValidateSpacing:       true,
		ValidateAccessibility: true,
		ValidateTouchTargets:  true,
		ValidateLayering:      true,
		ValidateMotion:        true,
		BaseFontSize:          grid.DefaultBaseFontSize,
	}
}

// Enabled reports whether a category is switched on.
func (o Options) Enabled(cat rules.Category) bool {
	switch cat {
	case rules.Spacing:
		return o.ValidateSpacing
	case rules.TouchTarget:
		return o.ValidateTouchTargets
	case rules.LineLength, rules.Contrast:
		return o.ValidateAccessibility
	case rules.ZIndex:
		return o.ValidateLayering
	case rules.Animation:
		return o.ValidateMotion
	default:
		return false
	}
}

// Validator evaluates observations against a catalog.
type Validator struct {
	grid    grid.Model
	catalog rules.Catalog
	opts    Options
}

// New creates a validator. A zero BaseFontSize falls back to 16px.
func New(g grid.Model, catalog rules.Catalog, opts Options) *Validator {
	if opts.BaseFontSize <= 0 {
		opts.BaseFontSize = grid.DefaultBaseFontSize
	}
	return &Validator{grid: g, catalog: catalog, opts: opts}
}

// Default returns a validator over the 8px grid with every category enabled.
func Default() *Validator {
	return New(grid.Default(), rules.Default(), DefaultOptions())
}

// Grid returns the grid model the validator checks against.
func (v *Validator) Grid() grid.Model {
	return v.grid
}

// Options returns the active category toggles.
func (v *Validator) Options() Options {
	return v.opts
}

// Validate checks every observed property. Messages are appended in
// observation order, then in catalog order. Malformed input degrades to a
// warning and never aborts the pass.
func (v *Validator) Validate(observed []ObservedProperty) Result {
	var res Result
	for _, p := range observed {
		v.validateOne(p, &res)
	}
	return res
}

func (v *Validator) validateOne(p ObservedProperty, res *Result) {
	for _, cat := range rules.Categories {
		if !v.opts.Enabled(cat) || !applies(cat, p) {
			continue
		}
		subj, err := v.subject(cat, p)
		if err != nil {
			if errors.Is(err, errSkip) {
				continue
			}
			res.Warnings = append(res.Warnings, couldNotEvaluate(p, err))
			continue
		}
		for _, f := range v.catalog.Evaluate(cat, subj) {
			switch f.Severity {
			case rules.SeverityError:
				res.Errors = append(res.Errors, f.Message)
			case rules.SeverityWarning:
				res.Warnings = append(res.Warnings, f.Message)
			default:
				res.Suggestions = append(res.Suggestions, f.Message)
			}
		}
	}
}

// errSkip marks values that are valid CSS but carry nothing to check (auto, normal).
var errSkip = errors.New("nothing to evaluate")

func (v *Validator) subject(cat rules.Category, p ObservedProperty) (rules.Subject, error) {
	s := rules.Subject{Property: p.Property, Element: p.Element, Raw: strings.TrimSpace(p.Value)}

	switch cat {
	case rules.Spacing:
		if p.Number != nil {
			s.Raw = grid.Px(*p.Number)
			if *p.Number < 0 {
				return s, grid.ErrNegative
			}
			s.Lengths = []float64{*p.Number}
			return s, nil
		}
		ls, err := grid.ParseLengths(p.Value)
		if errors.Is(err, grid.ErrKeyword) {
			return s, errSkip
		}
		if err != nil {
			return s, err
		}
		s.Keywords = make([]string, len(ls))
		for i, l := range ls {
			if l.IsKeyword() {
				s.Lengths = append(s.Lengths, 0)
				s.Keywords[i] = l.Keyword
				continue
			}
			px := l.Pixels(v.opts.BaseFontSize)
			if px < 0 {
				return s, grid.ErrNegative
			}
			s.Lengths = append(s.Lengths, px)
		}
		return s, nil

	case rules.TouchTarget:
		if p.Box.Width < 0 || p.Box.Height < 0 {
			return s, fmt.Errorf("%w: box %vx%v", grid.ErrNegative, p.Box.Width, p.Box.Height)
		}
		s.Width, s.Height = p.Box.Width, p.Box.Height
		return s, nil

	case rules.LineLength:
		n, err := intValue(p, "ch")
		if err != nil {
			return s, err
		}
		if n < 0 {
			return s, grid.ErrNegative
		}
		s.Chars = n
		return s, nil

	case rules.Contrast:
		ratio, err := rules.ContrastRatio(p.Foreground, p.Background)
		if err != nil {
			return s, err
		}
		s.Ratio = ratio
		s.LargeText = p.LargeText
		return s, nil

	case rules.ZIndex:
		if strings.EqualFold(s.Raw, "auto") {
			return s, errSkip
		}
		n, err := intValue(p, "")
		if err != nil {
			return s, err
		}
		s.ZIndex = n
		return s, nil

	case rules.Animation:
		d, err := durationValue(p)
		if err != nil {
			return s, err
		}
		if d < 0 {
			return s, grid.ErrNegative
		}
		s.Duration = d
		return s, nil
	}
	return s, errSkip
}

func intValue(p ObservedProperty, suffix string) (int, error) {
	if p.Number != nil {
		return int(*p.Number), nil
	}
	raw := strings.TrimSpace(p.Value)
	if suffix != "" {
		raw = strings.TrimSuffix(raw, suffix)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", p.Value)
	}
	return n, nil
}

// durationValue parses "300ms", "0.3s" or a comma list, keeping the longest.
// A pre-parsed Number is milliseconds.
func durationValue(p ObservedProperty) (time.Duration, error) {
	if p.Number != nil {
		return time.Duration(*p.Number * float64(time.Millisecond)), nil
	}
	var longest time.Duration
	parts := strings.Split(p.Value, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "0" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return 0, fmt.Errorf("not a duration: %q", p.Value)
		}
		if d > longest {
			longest = d
		}
	}
	return longest, nil
}

func couldNotEvaluate(p ObservedProperty, err error) string {
	what := p.Property
	if what == "" {
		what = "property"
	}
	if p.Element != "" {
		what = p.Element + " " + what
	}
	value := p.Value
	if value == "" && p.Number != nil {
		value = strconv.FormatFloat(*p.Number, 'f', -1, 64)
	}
	return fmt.Sprintf("could not evaluate %s value %q: %v", what, value, err)
}
