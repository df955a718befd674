package grid

import "math"

// Step is one entry of the spacing scale.
type Step struct {
	Key   float64 `json:"key" yaml:"key"`
	Value float64 `json:"value" yaml:"value"`
}

// Scale is the ordered set of canonical spacing values.
type Scale []Step

// scaleKeys are the design tokens exposed by the component library, in units.
// 0.5 is the half-unit step; 1.5 is the half-step between 1 and 2. There is no
// quarter-unit key, since IsOnGrid rejects quarter units.
var scaleKeys = []float64{0, 0.5, 1, 1.5, 2, 3, 4, 5, 6, 8, 10, 12, 16, 20, 24, 32, 40}

// Scale builds the spacing scale for the model's unit.
func (m Model) Scale() Scale {
	s := make(Scale, 0, len(scaleKeys))
	for _, k := range scaleKeys {
		s = append(s, Step{Key: k, Value: k * m.Unit})
	}
	return s
}

// Nearest returns the scale step whose value is closest to px.
// Ties resolve to the larger step.
func (s Scale) Nearest(px float64) (Step, bool) {
	if len(s) == 0 || math.IsNaN(px) {
		return Step{}, false
	}
	best := s[0]
	bestDist := math.Abs(px - best.Value)
	for _, step := range s[1:] {
		d := math.Abs(px - step.Value)
		if d <= bestDist {
			best, bestDist = step, d
		}
	}
	return best, true
}
