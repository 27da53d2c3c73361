// Package control holds the light-intensity slider model: the normalized
// control value, the drag flag and the pointer-to-value mapping.
//
// Everything here is a pure function of its inputs. The ECS systems in the
// root package own the state and call into this package once per frame.
package control

// State is the normalized slider value together with the multiplier bounds.
type State struct {
	Value    float32 `yaml:"value"`
	MinScale float32 `yaml:"min_scale"`
	MaxScale float32 `yaml:"max_scale"`
}

// Effective returns Value clamped to [0,1].
func (s State) Effective() float32 {
	return Clamp01(s.Value)
}

// Multiplier linearly interpolates between MinScale and MaxScale.
// MinScale > MaxScale is allowed and simply inverts the slider.
func (s State) Multiplier() float32 {
	return s.MinScale + (s.MaxScale-s.MinScale)*s.Effective()
}

// Intensities are the base light intensities at multiplier 1.
type Intensities struct {
	Center float32 `yaml:"center"`
	Other  float32 `yaml:"other"`
}

// For returns the live intensity of a light given the current multiplier.
func (i Intensities) For(center bool, multiplier float32) float32 {
	if center {
		return i.Center * multiplier
	}
	return i.Other * multiplier
}

// Gate reports whether a value differs from the one seen on the previous call.
// The zero Gate reports a change on its first call.
type Gate struct {
	last   float32
	primed bool
}

func (g *Gate) Changed(v float32) bool {
	if g.primed && g.last == v {
		return false
	}
	g.last = v
	g.primed = true
	return true
}

// Reset forces the next Changed call to report true.
func (g *Gate) Reset() {
	g.primed = false
}

func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
