package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Multiplier(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  float32
	}{
		{"zero", 0, 0},
		{"quarter", 0.25, 3.5},
		{"half", 0.5, 7},
		{"one", 1, 14},
		{"below range", -0.5, 0},
		{"above range", 1.7, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Value: tt.value, MinScale: 0, MaxScale: 14}
			assert.InDelta(t, tt.want, s.Multiplier(), 1e-5)
		})
	}
}

func TestState_Effective(t *testing.T) {
	assert.Equal(t, float32(0), State{Value: -0.5}.Effective())
	assert.Equal(t, float32(1), State{Value: 1.7}.Effective())
	assert.Equal(t, float32(0.3), State{Value: 0.3}.Effective())
}

func TestState_InvertedBounds(t *testing.T) {
	s := State{Value: 0.25, MinScale: 10, MaxScale: 2}
	assert.InDelta(t, 8, s.Multiplier(), 1e-5)
}

func TestIntensities_For(t *testing.T) {
	base := Intensities{Center: 4000, Other: 2000}
	assert.Equal(t, float32(14000), base.For(true, 3.5))
	assert.Equal(t, float32(7000), base.For(false, 3.5))
	assert.Equal(t, float32(0), base.For(true, 0))
}

func TestGate(t *testing.T) {
	var g Gate

	require.True(t, g.Changed(0.25), "first call always reports a change")
	assert.False(t, g.Changed(0.25))
	assert.True(t, g.Changed(0.5))
	assert.False(t, g.Changed(0.5))

	g.Reset()
	assert.True(t, g.Changed(0.5))
}
