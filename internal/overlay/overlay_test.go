package overlay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	surf := &Memory{}
	o := New(surf)
	assert.False(t, o.Visible())

	on, err := o.Toggle()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, surf.Present())

	on, err = o.Toggle()
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, surf.Present())
}

func TestToggle_ExternalRemoval(t *testing.T) {
	surf := &Memory{}
	o := New(surf)

	_, err := o.Toggle()
	require.NoError(t, err)

	// Removing it externally, repeatedly, must not break the next toggle.
	surf.RemoveExternally()
	surf.RemoveExternally()

	on, err := o.Toggle()
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, surf.Present())

	on, err = o.Toggle()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, surf.Present())
	assert.Equal(t, 2, surf.Created())
}

func TestShowRepairs(t *testing.T) {
	surf := &Memory{}
	o := New(surf)
	require.NoError(t, o.Show())
	surf.RemoveExternally()
	require.NoError(t, o.Show())
	assert.True(t, surf.Present())
	assert.True(t, o.Visible())

	require.NoError(t, o.Hide())
	require.NoError(t, o.Hide())
	assert.False(t, o.Visible())
}

type failingSurface struct{ err error }

func (f failingSurface) Create() error  { return f.err }
func (f failingSurface) Destroy() error { return nil }

func TestToggle_ErrorKeepsState(t *testing.T) {
	boom := errors.New("boom")
	o := New(failingSurface{err: boom})
	on, err := o.Toggle()
	assert.ErrorIs(t, err, boom)
	assert.False(t, on)
	assert.False(t, o.Visible())
}
