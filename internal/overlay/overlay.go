// Package overlay holds the on/off state of the developer grid overlay.
// The drawing surface is external (a browser page, a terminal view); this
// package only owns the flag and the create/destroy pairing.
package overlay

import (
	"fmt"
	"sync"
)

// Surface draws and removes the overlay. Destroy must succeed when the
// overlay is already gone, since hosts can remove it behind our back.
type Surface interface {
	Create() error
	Destroy() error
}

// Overlay is a two-state toggle bound to one surface.
type Overlay struct {
	mu      sync.Mutex
	surface Surface
	visible bool
}

// New creates a hidden overlay over surface.
func New(surface Surface) *Overlay {
	return &Overlay{surface: surface}
}

// Visible reports the current state.
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Toggle flips the overlay and returns the new state. On error the state is
// left unchanged.
func (o *Overlay) Toggle() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.visible {
		return o.hideLocked()
	}
	return o.showLocked()
}

// Show makes the overlay visible. Showing twice recreates the surface, which
// repairs an overlay removed externally.
func (o *Overlay) Show() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.showLocked()
	return err
}

// Hide removes the overlay.
func (o *Overlay) Hide() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.hideLocked()
	return err
}

func (o *Overlay) showLocked() (bool, error) {
	if err := o.surface.Destroy(); err != nil {
		return o.visible, fmt.Errorf("clear overlay: %w", err)
	}
	if err := o.surface.Create(); err != nil {
		return o.visible, fmt.Errorf("create overlay: %w", err)
	}
	o.visible = true
	return true, nil
}

func (o *Overlay) hideLocked() (bool, error) {
	if err := o.surface.Destroy(); err != nil {
		return o.visible, fmt.Errorf("destroy overlay: %w", err)
	}
	o.visible = false
	return false, nil
}

// Memory is an in-process Surface, used by hosts that draw the overlay from
// the flag themselves.
type Memory struct {
	mu      sync.Mutex
	present bool
	created int
}

func (m *Memory) Create() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.present = true
	m.created++
	return nil
}

func (m *Memory) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.present = false
	return nil
}

// Present reports whether the overlay is currently drawn.
func (m *Memory) Present() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.present
}

// RemoveExternally simulates the host tearing the overlay down.
func (m *Memory) RemoveExternally() {
	_ = m.Destroy()
}

// Created returns how many times the overlay has been drawn.
func (m *Memory) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}
