package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New(8)
	require.NoError(t, err)
	assert.Equal(t, 8.0, m.Unit)

	for _, bad := range []float64{0, -8, math.NaN(), math.Inf(1)} {
		_, err := New(bad)
		assert.True(t, errors.Is(err, ErrInvalidUnit), "unit %v", bad)
	}
}

func TestIsOnGrid_Multiples(t *testing.T) {
	m := Default()
	for k := 0; k <= 64; k++ {
		v := float64(k) * m.Unit
		assert.True(t, m.IsOnGrid(v), "%v should be on grid", v)
		// k*8+1 is never a multiple of 4
		assert.False(t, m.IsOnGrid(v+1), "%v should be off grid", v+1)
	}
}

func TestIsOnGrid_HalfStep(t *testing.T) {
	m := Default()
	assert.True(t, m.IsOnGrid(4))
	assert.True(t, m.IsOnGrid(12))
	assert.False(t, m.IsOnGrid(2))
	assert.False(t, m.IsOnGrid(15))
	assert.False(t, m.IsOnGrid(0.5))
}

func TestIsOnGrid_InvalidInput(t *testing.T) {
	m := Default()
	assert.True(t, m.IsOnGrid(0))
	assert.False(t, m.IsOnGrid(-8))
	assert.False(t, m.IsOnGrid(-4))
	assert.False(t, m.IsOnGrid(math.NaN()))
	assert.False(t, m.IsOnGrid(math.Inf(1)))
}

func TestNearestOnGrid(t *testing.T) {
	m := Default()
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 0},
		{3.99, 0},
		{4, 8}, // tie rounds up
		{7, 8},
		{12, 16}, // tie rounds up
		{15, 16},
		{19.9, 16},
		{20, 24},
		{-3, 0},
		{-4, -8},
		{-13, -16},
	}
	for _, tt := range tests {
		got := m.NearestOnGrid(tt.in)
		assert.Equal(t, tt.want, got, "NearestOnGrid(%v)", tt.in)
		assert.False(t, math.Signbit(got) && got == 0, "negative zero for %v", tt.in)
	}
}

func TestNearestOnGrid_IdempotentAndOnGrid(t *testing.T) {
	m := Default()
	for v := 0.0; v <= 400; v += 0.25 {
		n := m.NearestOnGrid(v)
		assert.Equal(t, n, m.NearestOnGrid(n), "idempotence at %v", v)
		assert.True(t, m.IsOnGrid(n), "%v -> %v not on grid", v, n)
		assert.LessOrEqual(t, math.Abs(n-v), m.Unit/2)
	}
	for v := -100.0; v < 0; v += 0.5 {
		n := m.NearestOnGrid(v)
		assert.Equal(t, n, m.NearestOnGrid(n), "idempotence at %v", v)
	}
}

func TestNearestOnGrid_NonFinite(t *testing.T) {
	m := Default()
	assert.True(t, math.IsNaN(m.NearestOnGrid(math.NaN())))
	assert.True(t, math.IsInf(m.NearestOnGrid(math.Inf(-1)), -1))
}

func TestToPixels(t *testing.T) {
	assert.Equal(t, 16.0, ToPixels(1, 16))
	assert.Equal(t, 24.0, ToPixels(1.5, 16))
	assert.Equal(t, 18.0, ToPixels(1, 18))
}

func TestScale(t *testing.T) {
	s := Default().Scale()
	require.NotEmpty(t, s)

	for i := 1; i < len(s); i++ {
		assert.Greater(t, s[i].Key, s[i-1].Key)
		assert.Greater(t, s[i].Value, s[i-1].Value)
	}
	for _, step := range s {
		assert.Equal(t, step.Key*8, step.Value)
		assert.GreaterOrEqual(t, step.Value, 0.0)
		assert.True(t, Default().IsOnGrid(step.Value), "step %v", step.Key)
	}

	assert.Equal(t, Step{Key: 0.5, Value: 4}, s[1])
	assert.Equal(t, Step{Key: 40, Value: 320}, s[len(s)-1])
}

func TestScale_Nearest(t *testing.T) {
	s := Default().Scale()
	step, ok := s.Nearest(15)
	require.True(t, ok)
	assert.Equal(t, 16.0, step.Value)

	step, _ = s.Nearest(14)
	assert.Equal(t, 16.0, step.Value) // 12 and 16 tie, larger wins

	step, _ = s.Nearest(1000)
	assert.Equal(t, 320.0, step.Value)

	_, ok = Scale(nil).Nearest(4)
	assert.False(t, ok)
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"15px", Length{Value: 15, Unit: UnitPx}},
		{" 16PX ", Length{Value: 16, Unit: UnitPx}},
		{"1.5rem", Length{Value: 1.5, Unit: UnitRem}},
		{"2em", Length{Value: 2, Unit: UnitEm}},
		{"12", Length{Value: 12, Unit: UnitUnitless}},
		{"0", Length{Value: 0, Unit: UnitUnitless}},
		{"-8px", Length{Value: -8, Unit: UnitPx}},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseLength_Errors(t *testing.T) {
	for _, in := range []string{"", "abc", "10%", "px", "1.2.3rem"} {
		_, err := ParseLength(in)
		assert.ErrorIs(t, err, ErrUnparsable, in)
	}
	for _, in := range []string{"auto", "normal", "inherit"} {
		_, err := ParseLength(in)
		assert.ErrorIs(t, err, ErrKeyword, in)
	}
}

func TestLength_Pixels(t *testing.T) {
	assert.Equal(t, 24.0, Length{Value: 1.5, Unit: UnitRem}.Pixels(16))
	assert.Equal(t, 15.0, Length{Value: 15, Unit: UnitPx}.Pixels(16))
	assert.Equal(t, 12.0, Length{Value: 12, Unit: UnitUnitless}.Pixels(16))
}

func TestParseLengths(t *testing.T) {
	ls, err := ParseLengths("8px 1rem  12")
	require.NoError(t, err)
	assert.Equal(t, []Length{{Value: 8, Unit: UnitPx}, {Value: 1, Unit: UnitRem}, {Value: 12, Unit: UnitUnitless}}, ls)

	ls, err = ParseLengths("15px AUTO")
	require.NoError(t, err)
	assert.Equal(t, []Length{{Value: 15, Unit: UnitPx}, {Keyword: "auto"}}, ls)
	assert.True(t, ls[1].IsKeyword())
	assert.Equal(t, "auto", ls[1].String())

	_, err = ParseLengths("auto auto")
	assert.ErrorIs(t, err, ErrKeyword)
	_, err = ParseLengths("8px wide")
	assert.ErrorIs(t, err, ErrUnparsable)
	_, err = ParseLengths("   ")
	assert.ErrorIs(t, err, ErrUnparsable)
}

func TestPx(t *testing.T) {
	assert.Equal(t, "16px", Px(16))
	assert.Equal(t, "12.5px", Px(12.5))
}
