package cornellbox

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Tonemapping uint8

const (
	TonemappingNone Tonemapping = iota
	TonemappingReinhard
	TonemappingAcesFitted
)

func (t Tonemapping) String() string {
	switch t {
	case TonemappingReinhard:
		return "reinhard"
	case TonemappingAcesFitted:
		return "aces_fitted"
	default:
		return "none"
	}
}

// CameraComponent is a perspective camera placed by the entity's TransformComponent
// and aimed at Target.
type CameraComponent struct {
	Target  mgl32.Vec3
	Up      mgl32.Vec3
	FovYDeg float32
	Near    float32
	Far     float32

	Hdr         bool
	Tonemapping Tonemapping
	Bloom       bool
	MsaaSamples int
	Fxaa        bool

	// Ambient contribution of volumetric fog; 0 leaves fog lit by lights only.
	VolumetricFogAmbient float32
}

func (c *CameraComponent) View(eye mgl32.Vec3) mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(eye, c.Target, up)
}

func (c *CameraComponent) Projection(aspect float32) mgl32.Mat4 {
	fov, near, far := c.FovYDeg, c.Near, c.Far
	if fov <= 0 {
		fov = 45
	}
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 1000
	}
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, near, far)
}

// ViewProjection combines the camera matrices for a viewport aspect ratio.
func (c *CameraComponent) ViewProjection(eye mgl32.Vec3, aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View(eye))
}
