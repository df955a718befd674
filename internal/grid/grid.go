// Package grid models the spacing grid every layout value is measured against.
// The base unit is 8px by default; half-unit multiples are accepted for fine
// borders and hairline offsets.
package grid

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultUnit is the spacing quantum in pixels.
	DefaultUnit = 8

	// DefaultBaseFontSize is the pixel size of 1rem when the caller does not supply one.
	DefaultBaseFontSize = 16
)

// ErrInvalidUnit is returned when a grid is constructed with a non-positive unit.
var ErrInvalidUnit = errors.New("grid unit must be greater than zero")

// Model answers on-grid and nearest-value queries for a single base unit.
type Model struct {
	Unit float64
}

// New creates a grid model for the given unit.
func New(unit float64) (Model, error) {
	if unit <= 0 || math.IsNaN(unit) || math.IsInf(unit, 0) {
		return Model{}, fmt.Errorf("%w: %v", ErrInvalidUnit, unit)
	}
	return Model{Unit: unit}, nil
}

// Default returns the 8px grid.
func Default() Model {
	return Model{Unit: DefaultUnit}
}

// HalfStep returns the finest accepted increment (Unit/2).
func (m Model) HalfStep() float64 {
	return m.Unit / 2
}

// IsOnGrid reports whether v is a multiple of the unit or of the half step.
// Negative values are treated as invalid input and are never on grid.
func (m Model) IsOnGrid(v float64) bool {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) || m.Unit <= 0 {
		return false
	}
	if v == 0 {
		return true
	}
	// Every multiple of the unit is also a multiple of the half step.
	return math.Mod(v, m.HalfStep()) == 0
}

// NearestOnGrid rounds v to the closest whole multiple of the unit.
// Ties go to the larger magnitude: 4 -> 8, 12 -> 16, -4 -> -8.
func (m Model) NearestOnGrid(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || m.Unit <= 0 {
		return v
	}
	n := math.Round(v/m.Unit) * m.Unit
	if n == 0 {
		// drop the sign of -0
		return 0
	}
	return n
}

// ToPixels converts a relative length (rem/em) to pixels. The base size is
// always supplied by the caller.
func ToPixels(rel, basePx float64) float64 {
	return rel * basePx
}
