package validator

import (
	"strings"
	"testing"

	"gridkit/internal/grid"
	"gridkit/internal/rules"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func button(w, h float64) ObservedProperty {
	return ObservedProperty{Property: "size", Element: "button", Box: &Box{Width: w, Height: h}}
}

func TestValidate_TouchTargetBoundaries(t *testing.T) {
	v := Default()

	r := v.Validate([]ObservedProperty{button(43, 50)})
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "too small")
	assert.Empty(t, r.Suggestions)

	r = v.Validate([]ObservedProperty{button(44, 44)})
	assert.Empty(t, r.Errors)
	require.Len(t, r.Suggestions, 1)
	assert.Contains(t, r.Suggestions[0], "48px")

	r = v.Validate([]ObservedProperty{button(48, 48)})
	assert.True(t, r.Empty(), "%+v", r)
}

func TestValidate_TouchTargetOnlyForInteractive(t *testing.T) {
	v := Default()
	r := v.Validate([]ObservedProperty{
		{Property: "size", Element: "div", Box: &Box{Width: 10, Height: 10}},
		{Property: "size", Element: "div", Role: "presentation", Box: &Box{Width: 10, Height: 10}},
		{Property: "size", Element: "button"}, // no geometry
		{Property: "size", Element: "a", Box: &Box{Width: 30, Height: 18}},
	})
	assert.True(t, r.Empty(), "%+v", r)

	r = v.Validate([]ObservedProperty{
		{Property: "size", Element: "div", Role: "button", Box: &Box{Width: 10, Height: 10}},
	})
	assert.Len(t, r.Errors, 1)
}

func TestValidate_SpacingBoundary(t *testing.T) {
	v := Default()

	r := v.Validate([]ObservedProperty{{Property: "padding", Value: "15px"}})
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "16px")

	r = v.Validate([]ObservedProperty{{Property: "padding", Value: "16px"}})
	assert.Empty(t, r.Errors)
}

func TestValidate_SpacingUnits(t *testing.T) {
	v := Default()
	r := v.Validate([]ObservedProperty{
		{Property: "margin-top", Value: "1rem"},     // 16px
		{Property: "gap", Value: "0.75rem"},         // 12px, half step
		{Property: "padding-left", Number: Num(24)}, // pre-parsed
		{Property: "column-gap", Value: "normal"},   // keyword, skipped
	})
	assert.True(t, r.Empty(), "%+v", r)

	r = v.Validate([]ObservedProperty{{Property: "margin", Value: "1.1rem"}})
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "1.1rem")
	assert.Contains(t, r.Errors[0], "use 16px")
}

func TestValidate_ShorthandWithKeyword(t *testing.T) {
	v := Default()

	r := v.Validate([]ObservedProperty{{Property: "margin", Value: "15px auto"}})
	require.Len(t, r.Errors, 1, "%+v", r)
	assert.Equal(t, "margin: 15px auto is off the 8px grid; use 16px auto", r.Errors[0])
	assert.Empty(t, r.Warnings)

	r = v.Validate([]ObservedProperty{
		{Property: "margin", Value: "0 auto"},
		{Property: "margin", Value: "auto auto"},
	})
	assert.True(t, r.Empty(), "%+v", r)

	r = v.Validate([]ObservedProperty{{Property: "margin", Value: "-8px auto"}})
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "negative length")
}

func TestValidate_OverlayLayersAreOnScale(t *testing.T) {
	r := Default().Validate([]ObservedProperty{
		{Property: "z-index", Value: "1050"},
		{Property: "z-index", Value: "9999"},
	})
	assert.True(t, r.Empty(), "%+v", r)
}

func TestValidate_NonSpacingPropertyIgnored(t *testing.T) {
	r := Default().Validate([]ObservedProperty{
		{Property: "width", Value: "15px"},
		{Property: "top", Value: "3px"},
	})
	assert.True(t, r.Empty())
}

func TestValidate_LineLengthBoundaries(t *testing.T) {
	v := Default()
	for _, tt := range []struct {
		chars  string
		errors int
		phrase string
	}{
		{"44", 1, "too short"},
		{"45", 0, ""},
		{"75", 0, ""},
		{"76", 1, "too long"},
	} {
		r := v.Validate([]ObservedProperty{{Property: "line-length", Element: "p", Value: tt.chars}})
		require.Len(t, r.Errors, tt.errors, tt.chars)
		if tt.errors > 0 {
			assert.Contains(t, r.Errors[0], tt.phrase)
		}
	}

	// not a text element
	r := v.Validate([]ObservedProperty{{Property: "line-length", Element: "img", Value: "10"}})
	assert.True(t, r.Empty())
}

func TestValidate_Contrast(t *testing.T) {
	v := Default()
	r := v.Validate([]ObservedProperty{{Property: "color", Element: "p", Foreground: "#999999", Background: "#ffffff"}})
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "contrast ratio")

	r = v.Validate([]ObservedProperty{{Property: "color", Foreground: "#999999", Background: "#ffffff", LargeText: false}})
	assert.Len(t, r.Errors, 1)

	r = v.Validate([]ObservedProperty{{Property: "color", Foreground: "#000", Background: "#fff"}})
	assert.True(t, r.Empty())

	// only one colour present: rule does not apply
	r = v.Validate([]ObservedProperty{{Property: "color", Foreground: "#999"}})
	assert.True(t, r.Empty())
}

func TestValidate_LayeringAndMotion(t *testing.T) {
	v := Default()
	r := v.Validate([]ObservedProperty{
		{Property: "z-index", Value: "999"},
		{Property: "z-index", Value: "auto"},
		{Property: "transition-duration", Value: "0.2s, 800ms"},
		{Property: "animation-duration", Value: "300ms"},
	})
	assert.Empty(t, r.Errors)
	require.Len(t, r.Warnings, 2)
	assert.Contains(t, r.Warnings[0], "z-index 999")
	assert.Contains(t, r.Warnings[1], "800ms")
}

func TestValidate_MalformedInputIsAWarning(t *testing.T) {
	v := Default()
	r := v.Validate([]ObservedProperty{
		{Property: "padding", Value: "banana"},
		{Property: "padding", Value: "15px"},
		{Property: "margin", Value: "-8px"},
		{Property: "z-index", Value: "high"},
		{Property: "color", Foreground: "#zzz", Background: "#fff"},
	})
	require.Len(t, r.Warnings, 4)
	for _, w := range r.Warnings {
		assert.True(t, strings.HasPrefix(w, "could not evaluate"), w)
	}
	assert.Contains(t, r.Warnings[0], "banana")
	// evaluation continued past the malformed property
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "15px")
}

func TestValidate_Ordering(t *testing.T) {
	v := Default()
	a := ObservedProperty{Property: "padding", Value: "15px"}
	b := ObservedProperty{Property: "margin", Value: "17px"}
	r := v.Validate([]ObservedProperty{a, b})
	require.Len(t, r.Errors, 2)
	assert.True(t, strings.HasPrefix(r.Errors[0], "padding"))
	assert.True(t, strings.HasPrefix(r.Errors[1], "margin"))

	r = v.Validate([]ObservedProperty{a, {Property: "padding", Value: "16px"}})
	require.Len(t, r.Errors, 1)
	assert.True(t, strings.HasPrefix(r.Errors[0], "padding: 15px"))
}

func TestValidate_NoShortCircuit(t *testing.T) {
	// A padded button that is both off-grid and too small reports both, grid first.
	p := ObservedProperty{Property: "padding", Value: "3px", Element: "button", Box: &Box{Width: 30, Height: 30}}
	r := Default().Validate([]ObservedProperty{p})
	require.Len(t, r.Errors, 2)
	assert.Contains(t, r.Errors[0], "off the 8px grid")
	assert.Contains(t, r.Errors[1], "touch target")
}

func TestValidate_Pure(t *testing.T) {
	v := Default()
	in := []ObservedProperty{
		{Property: "padding", Value: "15px"},
		button(44, 44),
		{Property: "z-index", Value: "7"},
	}
	before := append([]ObservedProperty(nil), in...)

	first := v.Validate(in)
	second := v.Validate(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}
	assert.True(t, first.Equal(second))
	assert.Equal(t, before, in)
}

func TestValidate_CategoryToggles(t *testing.T) {
	opts := DefaultOptions()
	opts.ValidateSpacing = false
	opts.ValidateTouchTargets = false
	v := New(grid.Default(), rules.Default(), opts)

	r := v.Validate([]ObservedProperty{{Property: "padding", Value: "15px"}, button(10, 10)})
	assert.True(t, r.Empty())

	opts = DefaultOptions()
	opts.ValidateAccessibility = false
	v = New(grid.Default(), rules.Default(), opts)
	r = v.Validate([]ObservedProperty{
		{Property: "line-length", Value: "10"},
		{Property: "color", Foreground: "#eee", Background: "#fff"},
	})
	assert.True(t, r.Empty())
}

func TestValidate_EmptyInput(t *testing.T) {
	r := Default().Validate(nil)
	assert.True(t, r.Empty())
	assert.True(t, r.Equal(Result{Errors: []string{}}))
}

func TestResult_Merge(t *testing.T) {
	a := Result{Errors: []string{"a"}}
	b := Result{Errors: []string{"b"}, Suggestions: []string{"s"}}
	m := a.Merge(b)
	assert.Equal(t, []string{"a", "b"}, m.Errors)
	assert.Equal(t, []string{"s"}, m.Suggestions)
	assert.Equal(t, 3, m.Count())
	assert.True(t, m.HasErrors())
}

func TestApplicability(t *testing.T) {
	assert.True(t, IsSpacingProperty("padding"))
	assert.True(t, IsSpacingProperty("Margin-Bottom"))
	assert.True(t, IsSpacingProperty("row-gap"))
	assert.False(t, IsSpacingProperty("paddington"))
	assert.False(t, IsSpacingProperty("width"))

	assert.True(t, IsInteractive("button", ""))
	assert.True(t, IsInteractive("div", "link"))
	assert.False(t, IsInteractive("div", ""))
	assert.False(t, IsInteractive("button", "none"))
	assert.False(t, IsInteractive("a", ""))
	assert.False(t, IsInteractive("input", ""))
	assert.True(t, IsInteractive("a", "button"))

	assert.True(t, IsTextBearing(""))
	assert.True(t, IsTextBearing("p"))
	assert.False(t, IsTextBearing("img"))
}
