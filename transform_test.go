package cornellbox

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestTransform_TransformPoint(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{1, 2, 3}).WithScale(mgl32.Vec3{2, 2, 2})
	assertVec3InDelta(t, mgl32.Vec3{3, 2, 3}, tr.TransformPoint(mgl32.Vec3{1, 0, 0}), 1e-5)

	rot := NewTransform(mgl32.Vec3{}).WithRotationY(90)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, rot.TransformPoint(mgl32.Vec3{1, 0, 0}), 1e-5)
}

func TestTransform_ZeroValueIsIdentity(t *testing.T) {
	var tr TransformComponent
	tr.Position = mgl32.Vec3{0, 1, 0}
	assertVec3InDelta(t, mgl32.Vec3{1, 1, 0}, tr.TransformPoint(mgl32.Vec3{1, 0, 0}), 1e-6)
}

func TestCamera_ViewProjectionCentersTarget(t *testing.T) {
	cam := CameraComponent{Target: mgl32.Vec3{0, 0.9, 0}, FovYDeg: 45}
	vp := cam.ViewProjection(mgl32.Vec3{0, 1, 3.2}, 16.0/9.0)
	ndc := mgl32.TransformCoordinate(cam.Target, vp)
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
}

func TestSrgbRoundTrip(t *testing.T) {
	for _, c := range []float32{0, 0.02, 0.5, 0.95, 1} {
		assert.InDelta(t, c, LinearToSrgb(SrgbToLinear(c)), 1e-5)
	}
	assert.InDelta(t, 0.214, SrgbToLinear(0.5), 1e-3)
	assert.Equal(t, "aces_fitted", TonemappingAcesFitted.String())
}
