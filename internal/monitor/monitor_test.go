package monitor

import (
	"bytes"
	"testing"

	"gridkit/internal/advisor"
	"gridkit/internal/report"
	"gridkit/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMonitor(buf *bytes.Buffer) *Monitor {
	sink := report.NewSink(report.NewRegistry(), true, report.WithWriter(buf))
	return New(validator.Default(), advisor.Default(), sink)
}

func TestObserve_RecordsAndEmits(t *testing.T) {
	var buf bytes.Buffer
	m := newMonitor(&buf)

	out, err := m.Observe("PrimaryButton", []validator.ObservedProperty{
		{Property: "padding", Value: "15px"},
		{Property: "size", Element: "button", Box: &validator.Box{Width: 44, Height: 44}},
	})
	require.NoError(t, err)
	assert.Len(t, out.Result.Errors, 1)
	assert.Len(t, out.Result.Suggestions, 1)
	assert.Equal(t, []string{"Change padding from 15px to 16px"}, out.Fixes)

	got, ok := m.Sink().Registry().Get("PrimaryButton")
	require.True(t, ok)
	assert.True(t, got.Equal(out.Result))

	text := buf.String()
	assert.Contains(t, text, "[gridkit] PrimaryButton")
	assert.Contains(t, text, "Auto-fix for PrimaryButton (1)")
}

func TestObserve_LastWriteWins(t *testing.T) {
	var buf bytes.Buffer
	m := newMonitor(&buf)

	_, err := m.Observe("Card", []validator.ObservedProperty{{Property: "gap", Value: "15px"}})
	require.NoError(t, err)
	_, err = m.Observe("Card", []validator.ObservedProperty{{Property: "gap", Value: "16px"}})
	require.NoError(t, err)

	got, _ := m.Sink().Registry().Get("Card")
	assert.True(t, got.Empty())
}

func TestObserve_Disabled(t *testing.T) {
	var buf bytes.Buffer
	m := newMonitor(&buf)
	m.SetEnabled(false)

	out, err := m.Observe("Card", []validator.ObservedProperty{{Property: "gap", Value: "15px"}})
	require.NoError(t, err)
	assert.True(t, out.Result.Empty())
	assert.Equal(t, 0, m.Sink().Registry().Len())
	assert.Empty(t, buf.String())
}

func TestObserveAll(t *testing.T) {
	var buf bytes.Buffer
	m := newMonitor(&buf)
	outs, err := m.ObserveAll([]validator.Component{
		{Name: "A", Properties: []validator.ObservedProperty{{Property: "margin", Value: "8px"}}},
		{Name: "B", Properties: []validator.ObservedProperty{{Property: "margin", Value: "9px"}}},
	})
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.False(t, outs[0].Result.HasErrors())
	assert.True(t, Failed(outs))
	assert.False(t, Failed(outs[:1]))
}
