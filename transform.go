package cornellbox

import (
	"github.com/go-gl/mathgl/mgl32"
)

type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// WithRotationY returns a copy rotated about +Y by deg degrees.
func (t TransformComponent) WithRotationY(deg float32) TransformComponent {
	t.Rotation = mgl32.QuatRotate(mgl32.DegToRad(deg), mgl32.Vec3{0, 1, 0})
	return t
}

func (t TransformComponent) WithScale(scale mgl32.Vec3) TransformComponent {
	t.Scale = scale
	return t
}

// Matrix is translation * rotation * scale.
func (t TransformComponent) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == (mgl32.Vec3{}) {
		s = mgl32.Vec3{1, 1, 1}
	}
	rot := t.Rotation
	if rot.W == 0 && rot.V == (mgl32.Vec3{}) {
		rot = mgl32.QuatIdent()
	}
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}

// TransformPoint maps a local-space point to world space.
func (t TransformComponent) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.Matrix())
}
