package grid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrUnparsable is returned for values that are not a length.
	ErrUnparsable = errors.New("unparsable length")

	// ErrKeyword is returned for CSS keywords such as auto or inherit, which
	// carry no magnitude to check.
	ErrKeyword = errors.New("length is a keyword")

	// ErrNegative is returned where a negative magnitude has no on-grid answer.
	ErrNegative = errors.New("negative length")
)

// LengthUnit is a CSS length unit understood by the grid.
type LengthUnit string

const (
	UnitPx       LengthUnit = "px"
	UnitRem      LengthUnit = "rem"
	UnitEm       LengthUnit = "em"
	UnitUnitless LengthUnit = ""
)

var keywords = map[string]bool{
	"auto":    true,
	"normal":  true,
	"inherit": true,
	"initial": true,
	"unset":   true,
	"revert":  true,
	"none":    true,
}

// Length is a parsed CSS length. In a shorthand, a keyword component such as
// the auto of "0 auto" is kept as a Length with Keyword set and no magnitude.
type Length struct {
	Value   float64
	Unit    LengthUnit
	Keyword string
}

// IsKeyword reports whether the length is a keyword placeholder.
func (l Length) IsKeyword() bool {
	return l.Keyword != ""
}

// Pixels converts the length to pixels. Relative units resolve against basePx.
func (l Length) Pixels(basePx float64) float64 {
	switch l.Unit {
	case UnitRem, UnitEm:
		return ToPixels(l.Value, basePx)
	default:
		return l.Value
	}
}

func (l Length) String() string {
	if l.IsKeyword() {
		return l.Keyword
	}
	return FormatPixels(l.Value) + string(l.Unit)
}

// ParseLength parses a single length such as "15px", "1.5rem" or "12".
// Unitless numbers are pixels.
func ParseLength(s string) (Length, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return Length{}, fmt.Errorf("%w: empty value", ErrUnparsable)
	}
	if keywords[raw] {
		return Length{}, fmt.Errorf("%w: %q", ErrKeyword, raw)
	}

	unit := UnitUnitless
	num := raw
	// rem must be checked before em.
	for _, u := range []LengthUnit{UnitRem, UnitPx, UnitEm} {
		if strings.HasSuffix(raw, string(u)) {
			unit = u
			num = strings.TrimSuffix(raw, string(u))
			break
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, fmt.Errorf("%w: %q", ErrUnparsable, s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// ParseLengths parses a whitespace separated shorthand ("8px 16px").
// Keyword components are kept in place ("15px auto"); ErrKeyword is returned
// only when every component is a keyword.
func ParseLengths(s string) ([]Length, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrUnparsable)
	}
	out := make([]Length, 0, len(fields))
	numeric := 0
	for _, f := range fields {
		l, err := ParseLength(f)
		if errors.Is(err, ErrKeyword) {
			out = append(out, Length{Keyword: strings.ToLower(f)})
			continue
		}
		if err != nil {
			return nil, err
		}
		numeric++
		out = append(out, l)
	}
	if numeric == 0 {
		return nil, fmt.Errorf("%w: %q", ErrKeyword, strings.TrimSpace(s))
	}
	return out, nil
}

// FormatPixels renders a magnitude without trailing zeros ("16", "12.5").
func FormatPixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Px formats a magnitude with the px suffix.
func Px(v float64) string {
	return FormatPixels(v) + "px"
}
