package cornellbox

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GizmoLine is a screen-space segment in window pixels.
type GizmoLine struct {
	From, To mgl32.Vec2
	Color    [4]float32
}

// GizmoMarker is a filled screen-space disc.
type GizmoMarker struct {
	At     mgl32.Vec2
	Radius float32
	Color  [4]float32
}

// GizmoFrame is the wireframe overlay for one frame, rebuilt in PreRender and
// drawn by the host in Render.
type GizmoFrame struct {
	Lines   []GizmoLine
	Markers []GizmoMarker
}

func (f *GizmoFrame) Reset() {
	f.Lines = f.Lines[:0]
	f.Markers = f.Markers[:0]
}

type GizmoModule struct{}

func (GizmoModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&GizmoFrame{})
	if _, ok := Resource[AssetServer](app); !ok {
		cmd.AddResources(NewAssetServer())
	}
	app.UseSystem(System(gizmoSystem).InStage(PreRender))
}

const (
	gizmoMarkerRadius = 7
	gizmoFogAlpha     = 0.35
	// Intensity at which a light marker reaches about 63% brightness.
	gizmoIntensityScale = 20000
)

// cuboidEdges indexes the corners returned by cuboidCorners.
var cuboidEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// cuboidCorners returns the world-space corners of a box of the given size.
// Bit 0 of the index selects +x, bit 1 +y, bit 2 +z.
func cuboidCorners(size mgl32.Vec3, tr TransformComponent) [8]mgl32.Vec3 {
	half := size.Mul(0.5)
	m := tr.Matrix()
	var out [8]mgl32.Vec3
	for i := range out {
		local := mgl32.Vec3{-half.X(), -half.Y(), -half.Z()}
		if i&1 != 0 {
			local[0] = half.X()
		}
		if i&2 != 0 {
			local[1] = half.Y()
		}
		if i&4 != 0 {
			local[2] = half.Z()
		}
		out[i] = mgl32.TransformCoordinate(local, m)
	}
	return out
}

type gizmoProjector struct {
	viewProj mgl32.Mat4
	width    float32
	height   float32
}

func newGizmoProjector(eye mgl32.Vec3, cam *CameraComponent, width, height int) gizmoProjector {
	return gizmoProjector{
		viewProj: cam.ViewProjection(eye, float32(width)/float32(height)),
		width:    float32(width),
		height:   float32(height),
	}
}

func (p gizmoProjector) toScreen(clip mgl32.Vec4) mgl32.Vec2 {
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
	return mgl32.Vec2{(ndcX + 1) * 0.5 * p.width, (1 - ndcY) * 0.5 * p.height}
}

// segment projects a world-space segment, clipping it against the plane just
// in front of the eye. ok is false when the segment is entirely behind it.
func (p gizmoProjector) segment(a, b mgl32.Vec3) (mgl32.Vec2, mgl32.Vec2, bool) {
	const eps = 1e-4
	ca := p.viewProj.Mul4x1(a.Vec4(1))
	cb := p.viewProj.Mul4x1(b.Vec4(1))
	da, db := ca.W()-eps, cb.W()-eps
	if da < 0 && db < 0 {
		return mgl32.Vec2{}, mgl32.Vec2{}, false
	}
	if da < 0 {
		ca = ca.Add(cb.Sub(ca).Mul(da / (da - db)))
	} else if db < 0 {
		cb = cb.Add(ca.Sub(cb).Mul(db / (db - da)))
	}
	return p.toScreen(ca), p.toScreen(cb), true
}

func (p gizmoProjector) point(v mgl32.Vec3) (mgl32.Vec2, bool) {
	c := p.viewProj.Mul4x1(v.Vec4(1))
	if c.W() <= 1e-4 {
		return mgl32.Vec2{}, false
	}
	return p.toScreen(c), true
}

func (p gizmoProjector) box(frame *GizmoFrame, size mgl32.Vec3, tr TransformComponent, color [4]float32) {
	corners := cuboidCorners(size, tr)
	for _, e := range cuboidEdges {
		from, to, ok := p.segment(corners[e[0]], corners[e[1]])
		if ok {
			frame.Lines = append(frame.Lines, GizmoLine{From: from, To: to, Color: color})
		}
	}
}

func displayColor(linear [3]float32, alpha float32) [4]float32 {
	return [4]float32{LinearToSrgb(linear[0]), LinearToSrgb(linear[1]), LinearToSrgb(linear[2]), alpha}
}

// markerBrightness maps a light intensity onto [0,1).
func markerBrightness(intensity float32) float32 {
	if intensity <= 0 {
		return 0
	}
	return float32(1 - math.Exp(-float64(intensity)/gizmoIntensityScale))
}

func gizmoSystem(cmd *Commands, input *Input, assets *AssetServer, frame *GizmoFrame) {
	frame.Reset()
	if input.WindowWidth == 0 || input.WindowHeight == 0 {
		return
	}

	var proj gizmoProjector
	found := false
	MakeQuery2[CameraComponent, TransformComponent](cmd).Map(func(_ EntityId, cam *CameraComponent, tr *TransformComponent) bool {
		proj = newGizmoProjector(tr.Position, cam, input.WindowWidth, input.WindowHeight)
		found = true
		return false
	})
	if !found {
		return
	}
	buildGizmos(cmd, assets, proj, frame)
}

func buildGizmos(cmd *Commands, assets *AssetServer, proj gizmoProjector, frame *GizmoFrame) {
	MakeQuery3[MeshComponent, MaterialComponent, TransformComponent](cmd).Map(
		func(_ EntityId, mesh *MeshComponent, mat *MaterialComponent, tr *TransformComponent) bool {
			cuboid, ok := assets.Cuboid(mesh.Mesh)
			if !ok {
				return true
			}
			color := [4]float32{1, 1, 1, 1}
			if m, ok := assets.Material(mat.Material); ok {
				color = displayColor(m.BaseColor, 1)
			}
			proj.box(frame, cuboid.Size, *tr, color)
			return true
		})

	// Fog volumes are unit cubes scaled by their transform.
	MakeQuery2[FogVolumeComponent, TransformComponent](cmd).Map(func(_ EntityId, fog *FogVolumeComponent, tr *TransformComponent) bool {
		proj.box(frame, mgl32.Vec3{1, 1, 1}, *tr, displayColor(fog.Color, gizmoFogAlpha))
		return true
	})

	MakeQuery2[LightComponent, TransformComponent](cmd).Map(func(_ EntityId, light *LightComponent, tr *TransformComponent) bool {
		at, ok := proj.point(tr.Position)
		if !ok {
			return true
		}
		b := markerBrightness(light.Intensity)
		frame.Markers = append(frame.Markers, GizmoMarker{
			At:     at,
			Radius: gizmoMarkerRadius * (0.5 + b),
			Color:  displayColor(light.Color, 0.15+0.85*b),
		})
		return true
	})
}
