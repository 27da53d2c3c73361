package cornellbox

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CeilingLight tags the grid lights driven by the intensity slider.
type CeilingLight struct {
	Center bool
}

// LightPlacement is one cell of the ceiling light grid.
type LightPlacement struct {
	IX, IZ   int
	Position mgl32.Vec3
	Center   bool
}

// GridLights lays out Grid x Grid lights across the ceiling panel, corner to
// corner. A single light sits at the panel's -x/-z corner. The centre light
// is the cell at (Grid/2, Grid/2).
func GridLights(cfg CornellConfig) []LightPlacement {
	n := cfg.Grid
	if n < 1 {
		return nil
	}

	var stepX, stepZ float32
	if n > 1 {
		stepX = cfg.Panel.Width / float32(n-1)
		stepZ = cfg.Panel.Depth / float32(n-1)
	}
	startX := -cfg.Panel.Width * 0.5
	startZ := -cfg.Panel.Depth * 0.5
	y := cfg.Room.Height - cfg.Lights.Drop

	out := make([]LightPlacement, 0, n*n)
	for ix := 0; ix < n; ix++ {
		for iz := 0; iz < n; iz++ {
			out = append(out, LightPlacement{
				IX:       ix,
				IZ:       iz,
				Position: mgl32.Vec3{startX + float32(ix)*stepX, y, startZ + float32(iz)*stepZ},
				Center:   ix == n/2 && iz == n/2,
			})
		}
	}
	return out
}

var (
	cornellWhite = SrgbColor(0.96, 0.96, 0.96)
	cornellRed   = SrgbColor(0.63, 0.065, 0.05)
	cornellGreen = SrgbColor(0.14, 0.45, 0.091)
	cornellPanel = SrgbColor(0.98, 0.98, 0.98)
)

func matte(color [3]float32) StandardMaterial {
	return StandardMaterial{BaseColor: color, Roughness: 1, Metallic: 0}
}

// CornellScene builds the room, ceiling panel, light grid, fog volume and props.
func CornellScene(cfg CornellConfig) SceneDef {
	w, h, d, t := cfg.Room.Width, cfg.Room.Height, cfg.Room.Depth, cfg.Room.WallThickness
	white, red, green := matte(cornellWhite), matte(cornellRed), matte(cornellGreen)

	tonemapping, _ := parseTonemapping(cfg.Render.Tonemapping)
	scene := SceneDef{
		Camera: &CameraDef{
			Eye: mgl32.Vec3(cfg.Camera.Eye),
			Camera: CameraComponent{
				Target:      mgl32.Vec3(cfg.Camera.Target),
				Up:          mgl32.Vec3{0, 1, 0},
				FovYDeg:     cfg.Camera.FovYDeg,
				Near:        0.1,
				Far:         1000,
				Hdr:         cfg.Render.Hdr,
				Tonemapping: tonemapping,
				Bloom:       cfg.Render.Bloom,
				MsaaSamples: cfg.Render.MsaaSamples(),
				Fxaa:        cfg.Render.Fxaa,

				VolumetricFogAmbient: cfg.Render.VolumetricFogAmbient,
			},
		},
		Boxes: []BoxDef{
			{Name: "floor", Size: mgl32.Vec3{w, t, d}, Transform: NewTransform(mgl32.Vec3{0, t * 0.5, 0}), Material: white},
			{Name: "ceiling", Size: mgl32.Vec3{w, t, d}, Transform: NewTransform(mgl32.Vec3{0, h - t*0.5, 0}), Material: white},
			{Name: "back", Size: mgl32.Vec3{w, h, t}, Transform: NewTransform(mgl32.Vec3{0, h * 0.5, -d*0.5 + t*0.5}), Material: white},
			{Name: "left", Size: mgl32.Vec3{t, h, d}, Transform: NewTransform(mgl32.Vec3{-w*0.5 + t*0.5, h * 0.5, 0}), Material: red},
			{Name: "right", Size: mgl32.Vec3{t, h, d}, Transform: NewTransform(mgl32.Vec3{w*0.5 - t*0.5, h * 0.5, 0}), Material: green},
			{
				Name:      "panel",
				Size:      mgl32.Vec3{cfg.Panel.Width, t * 0.5, cfg.Panel.Depth},
				Transform: NewTransform(mgl32.Vec3{0, h - t - 0.001, 0}),
				Material:  StandardMaterial{BaseColor: cornellPanel, Roughness: 0.5},
			},
			{
				Name:      "short-block",
				Size:      mgl32.Vec3{0.6, 0.6, 0.6},
				Transform: NewTransform(mgl32.Vec3{-0.42, t + 0.3, -0.55}).WithRotationY(15),
				Material:  white,
			},
			{
				Name:      "tall-block",
				Size:      mgl32.Vec3{0.5, 1.2, 0.5},
				Transform: NewTransform(mgl32.Vec3{0.52, t + 0.6, -0.32}).WithRotationY(-12),
				Material:  white,
			},
		},
	}

	lightColor := SrgbColor(cfg.Lights.Color[0], cfg.Lights.Color[1], cfg.Lights.Color[2])
	multiplier := cfg.Control.Multiplier()
	for _, p := range GridLights(cfg) {
		scene.Lights = append(scene.Lights, LightDef{
			Position: p.Position,
			Light: LightComponent{
				Type:           LightTypePoint,
				Color:          lightColor,
				Intensity:      cfg.Lights.Base.For(p.Center, multiplier),
				Range:          cfg.Lights.Range,
				Radius:         cfg.Lights.Radius,
				ShadowsEnabled: cfg.Lights.Shadows,
				Volumetric:     true,
			},
			Extra: []any{&CeilingLight{Center: p.Center}},
		})
	}

	s := cfg.Fog.Scale
	scene.FogVolumes = []FogVolumeDef{{
		Transform: NewTransform(mgl32.Vec3{0, h * 0.5, 0}).WithScale(mgl32.Vec3{w * s, h * s, d * s}),
		Fog: FogVolumeComponent{
			DensityFactor: cfg.Fog.Density,
			Absorption:    cfg.Fog.Absorption,
			Color:         lightColor,
		},
	}}
	return scene
}

// CornellSceneModule spawns the scene at startup and installs the scene-wide
// lighting resources.
type CornellSceneModule struct {
	Config CornellConfig
}

func (mod CornellSceneModule) Install(app *App, cmd *Commands) {
	cfg := mod.Config
	cmd.AddResources(
		&AmbientLight{Color: [3]float32{1, 1, 1}, Brightness: cfg.Lights.Ambient},
		&PointLightShadowMap{Size: cfg.Lights.ShadowMapSize},
	)
	if _, ok := Resource[AssetServer](app); !ok {
		cmd.AddResources(NewAssetServer())
	}

	scene := CornellScene(cfg)
	app.UseSystem(
		System(func(cmd *Commands, assets *AssetServer) {
			LoadScene(cmd, assets, &scene)
			cmd.Logger().Infof("cornell scene: %d boxes, %d lights (%dx%d grid), %s",
				len(scene.Boxes), len(scene.Lights), cfg.Grid, cfg.Grid, assets)
		}).InStage(Startup),
	)
}
