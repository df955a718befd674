package ui

import (
	"errors"
	"strings"
	"testing"

	"gridkit/internal/advisor"
	"gridkit/internal/grid"
	"gridkit/internal/monitor"
	"gridkit/internal/report"
	"gridkit/internal/validator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []validator.Component {
	return []validator.Component{
		{Name: "Button", Properties: []validator.ObservedProperty{
			{Property: "padding", Value: "15px"},
			{Property: "box", Element: "button", Box: &validator.Box{Width: 43, Height: 50}},
		}},
		{Name: "Card", Properties: []validator.ObservedProperty{
			{Property: "margin", Value: "16px"},
		}},
	}
}

func newTestInspector(load LoadFunc) InspectorModel {
	sink := report.NewSink(report.NewRegistry(), false)
	mon := monitor.New(validator.Default(), advisor.Default(), sink)
	return NewInspectorModel("fixture", load, mon, grid.Default(), 16, NewStyles(LightTheme()))
}

// run executes a command synchronously and feeds its message back.
func run(t *testing.T, m InspectorModel, cmd tea.Cmd) InspectorModel {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(InspectorModel)
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInspector_InitValidates(t *testing.T) {
	m := newTestInspector(func() ([]validator.Component, error) { return fixture(), nil })
	m = run(t, m, m.Init())

	o, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Button", o.Name)
	assert.Len(t, o.Result.Errors, 2)
	assert.NotEmpty(t, o.Fixes)
	assert.Contains(t, m.View(), "Button")
}

func TestInspector_ToggleOverlay(t *testing.T) {
	m := newTestInspector(func() ([]validator.Component, error) { return fixture(), nil })
	m = run(t, m, m.Init())
	assert.False(t, m.OverlayVisible())

	next, _ := m.Update(keyPress("g"))
	m = next.(InspectorModel)
	assert.True(t, m.OverlayVisible())
	assert.Contains(t, m.detail.View(), "Spacing on the 8px grid")

	next, _ = m.Update(keyPress("g"))
	m = next.(InspectorModel)
	assert.False(t, m.OverlayVisible())
}

func TestInspector_Revalidate(t *testing.T) {
	calls := 0
	m := newTestInspector(func() ([]validator.Component, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("manifest vanished")
		}
		return fixture(), nil
	})
	m = run(t, m, m.Init())

	next, cmd := m.Update(keyPress("r"))
	m = run(t, next.(InspectorModel), cmd)
	assert.Equal(t, 2, calls)
	require.Error(t, m.err)
	// The previous results stay on screen.
	_, ok := m.Selected()
	assert.True(t, ok)
	assert.Contains(t, m.View(), "manifest vanished")
}

func TestInspector_Quit(t *testing.T) {
	m := newTestInspector(func() ([]validator.Component, error) { return nil, nil })
	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestRenderGridOverlay(t *testing.T) {
	styles := NewStyles(LightTheme())
	out := RenderGridOverlay([]validator.ObservedProperty{
		{Property: "padding", Value: "8px 15px"},
		{Property: "z-index", Value: "10"},
	}, grid.Default(), 16, styles)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "padding 8px")
	assert.NotContains(t, lines[0], "->")
	assert.Contains(t, lines[1], "padding 15px")
	assert.Contains(t, lines[1], "-> 16px")

	none := RenderGridOverlay(nil, grid.Default(), 16, styles)
	assert.Contains(t, none, "no spacing values")
}

func TestRenderGridOverlay_SkipsKeywords(t *testing.T) {
	styles := NewStyles(LightTheme())
	out := RenderGridOverlay([]validator.ObservedProperty{
		{Property: "margin", Value: "15px auto"},
	}, grid.Default(), 16, styles)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "margin 15px")
	assert.Contains(t, lines[0], "-> 16px")
}
