package browser

import (
	"testing"

	"gridkit/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToComponents(t *testing.T) {
	samples := []elementSample{
		{
			Name:   "cta",
			Tag:    "button",
			Width:  43,
			Height: 50,
			Styles: []stylePair{
				{Property: "padding-top", Value: "15px"},
				{Property: "z-index", Value: "auto"},
			},
			Color:      "rgb(0, 0, 0)",
			Background: "rgb(255, 255, 255)",
			FontSize:   16,
			FontWeight: 400,
			HasText:    true,
		},
		{
			Name:    "p",
			Tag:     "p",
			Width:   300,
			Height:  40,
			Chars:   40,
			HasText: false,
		},
	}

	components := toComponents(samples)
	require.Len(t, components, 2)
	assert.Equal(t, "cta", components[0].Name)

	props := components[0].Properties
	require.Len(t, props, 4)
	assert.Equal(t, "padding-top", props[0].Property)
	assert.Equal(t, "z-index", props[1].Property)
	assert.Equal(t, &validator.Box{Width: 43, Height: 50}, props[2].Box)
	assert.Equal(t, "rgb(0, 0, 0)", props[3].Foreground)
	assert.False(t, props[3].LargeText)

	p := components[1].Properties
	require.Len(t, p, 2)
	assert.Equal(t, "characters-per-line", p[1].Property)
	require.NotNil(t, p[1].Number)
	assert.Equal(t, 40.0, *p[1].Number)
}

func TestToComponents_Validates(t *testing.T) {
	components := toComponents([]elementSample{{
		Name:   "cta",
		Tag:    "button",
		Width:  43,
		Height: 50,
		Styles: []stylePair{{Property: "padding-top", Value: "15px"}},
	}})

	res := validator.Default().Validate(components[0].Properties)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "padding-top")
	assert.Contains(t, res.Errors[1], "43")
}

func TestToComponents_SkipsEmptyBox(t *testing.T) {
	components := toComponents([]elementSample{{Name: "a", Tag: "a"}})
	require.Len(t, components, 1)
	assert.Empty(t, components[0].Properties)
}

func TestIsLargeText(t *testing.T) {
	assert.True(t, isLargeText(24, 400))
	assert.True(t, isLargeText(18.66, 700))
	assert.False(t, isLargeText(18.66, 400))
	assert.False(t, isLargeText(16, 700))
}

func TestConfigFallbacks(t *testing.T) {
	var cfg Config
	assert.Equal(t, 1280, cfg.GetViewportWidth())
	assert.Equal(t, 800, cfg.GetViewportHeight())
	assert.Equal(t, DefaultConfig().NavigationTimeout, cfg.GetNavigationTimeout())
}

func TestLauncherFor_ParsesFlags(t *testing.T) {
	l := launcherFor(Config{Launch: []string{"/usr/bin/chromium", "--no-sandbox", "--window-size=800,600"}, Headless: true})
	assert.True(t, l.Has("no-sandbox"))
	assert.Equal(t, "800,600", l.Get("window-size"))
}

func TestOpenBeforeStart(t *testing.T) {
	sm := NewSessionManager(DefaultConfig())
	_, err := sm.Open(t.Context(), "about:blank")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.False(t, sm.IsConnected())
}
