package cornellbox

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/cornellbox/control"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"` // Borderless, on the primary monitor
	Vsync      bool   `yaml:"vsync"`
	Width      int    `yaml:"width"` // Windowed size
	Height     int    `yaml:"height"`
}

type RoomConfig struct {
	Width         float32 `yaml:"width"`
	Height        float32 `yaml:"height"`
	Depth         float32 `yaml:"depth"`
	WallThickness float32 `yaml:"wall_thickness"`
}

type PanelConfig struct {
	Width float32 `yaml:"width"`
	Depth float32 `yaml:"depth"`
}

type LightsConfig struct {
	Base          control.Intensities `yaml:"base"`
	Range         float32             `yaml:"range"`
	Radius        float32             `yaml:"radius"`
	Color         [3]float32          `yaml:"color"` // sRGB
	Shadows       bool                `yaml:"shadows"`
	ShadowMapSize int                 `yaml:"shadow_map_size"`
	// Lights hang this far below the inside of the ceiling.
	Drop    float32 `yaml:"drop"`
	Ambient float32 `yaml:"ambient"`
}

type FogConfig struct {
	Density    float32 `yaml:"density"`
	Absorption float32 `yaml:"absorption"`
	// Fog volume size relative to the room.
	Scale float32 `yaml:"scale"`
}

type RenderConfig struct {
	Hdr         bool   `yaml:"hdr"`
	Tonemapping string `yaml:"tonemapping"`
	Bloom       bool   `yaml:"bloom"`
	Msaa        bool   `yaml:"msaa"` // Two samples when on
	Fxaa        bool   `yaml:"fxaa"`

	VolumetricFogAmbient float32 `yaml:"volumetric_fog_ambient"`
}

type CameraConfig struct {
	Eye     [3]float32 `yaml:"eye"`
	Target  [3]float32 `yaml:"target"`
	FovYDeg float32    `yaml:"fov_y_deg"`
}

type FpsConfig struct {
	TextSize float32 `yaml:"text_size"`
	Top      float32 `yaml:"top"`
	Right    float32 `yaml:"right"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// CornellConfig holds every tunable of the scene, the slider and the window.
type CornellConfig struct {
	Window  WindowConfig   `yaml:"window"`
	Room    RoomConfig     `yaml:"room"`
	Panel   PanelConfig    `yaml:"panel"`
	Grid    int            `yaml:"grid"` // Lights per side
	Lights  LightsConfig   `yaml:"lights"`
	Fog     FogConfig      `yaml:"fog"`
	Render  RenderConfig   `yaml:"render"`
	Camera  CameraConfig   `yaml:"camera"`
	Control control.State  `yaml:"control"`
	Slider  control.Slider `yaml:"slider"`
	Fps     FpsConfig      `yaml:"fps"`
	Log     LogConfig      `yaml:"log"`
}

func DefaultCornellConfig() CornellConfig {
	return CornellConfig{
		Window: WindowConfig{
			Title:      "Cornell Box + Volumetric Fog",
			Fullscreen: true,
			Vsync:      false,
			Width:      1280,
			Height:     720,
		},
		Room:  RoomConfig{Width: 2.0, Height: 2.0, Depth: 2.5, WallThickness: 0.05},
		Panel: PanelConfig{Width: 0.70, Depth: 0.70},
		Grid:  2,
		Lights: LightsConfig{
			Base:          control.Intensities{Center: 4000, Other: 2000},
			Range:         30,
			Radius:        0.25,
			Color:         [3]float32{1.0, 0.95, 0.8},
			Shadows:       true,
			ShadowMapSize: 2048,
			Drop:          0.12,
			Ambient:       0.015,
		},
		Fog: FogConfig{Density: 0.001, Absorption: 0.18, Scale: 1.05},
		Render: RenderConfig{
			Hdr:         true,
			Tonemapping: TonemappingAcesFitted.String(),
			Bloom:       true,
			Msaa:        true,
			Fxaa:        true,
		},
		Camera: CameraConfig{
			Eye:     [3]float32{0, 1.0, 3.2},
			Target:  [3]float32{0, 0.9, 0},
			FovYDeg: 45,
		},
		Control: control.State{Value: 0.25, MinScale: 0, MaxScale: 14},
		Slider: control.Slider{
			WidthPx:        340,
			HeightPx:       14,
			KnobSizePx:     18,
			BottomMarginPx: 14,
			GrabExtraYPx:   28,
		},
		Fps: FpsConfig{TextSize: 22, Top: 8, Right: 12},
		Log: LogConfig{Level: "info"},
	}
}

var ErrInvalidConfig = errors.New("invalid config")

// ParseCornellConfig overlays YAML onto the defaults. Keys that are absent
// keep their default value.
func ParseCornellConfig(data []byte) (CornellConfig, error) {
	cfg := DefaultCornellConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CornellConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return CornellConfig{}, err
	}
	return cfg, nil
}

// LoadCornellConfig reads and parses a YAML file.
func LoadCornellConfig(path string) (CornellConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CornellConfig{}, fmt.Errorf("read config: %w", err)
	}
	return ParseCornellConfig(data)
}

func (cfg CornellConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(cfg.Grid >= 1, "grid must be at least 1, got %d", cfg.Grid)
	check(cfg.Room.Width > 0 && cfg.Room.Height > 0 && cfg.Room.Depth > 0,
		"room dimensions must be positive, got %vx%vx%v", cfg.Room.Width, cfg.Room.Height, cfg.Room.Depth)
	check(cfg.Room.WallThickness > 0, "wall thickness must be positive, got %v", cfg.Room.WallThickness)
	check(cfg.Panel.Width > 0 && cfg.Panel.Depth > 0,
		"panel dimensions must be positive, got %vx%v", cfg.Panel.Width, cfg.Panel.Depth)
	check(cfg.Slider.WidthPx > 0 && cfg.Slider.HeightPx > 0 && cfg.Slider.KnobSizePx > 0,
		"slider sizes must be positive")
	check(cfg.Slider.KnobSizePx <= cfg.Slider.WidthPx,
		"knob (%v px) wider than track (%v px)", cfg.Slider.KnobSizePx, cfg.Slider.WidthPx)
	check(cfg.Control.Value >= 0 && cfg.Control.Value <= 1,
		"initial control value must be in [0,1], got %v", cfg.Control.Value)
	check(cfg.Lights.ShadowMapSize > 0, "shadow map size must be positive, got %d", cfg.Lights.ShadowMapSize)
	check(cfg.Fog.Scale > 0, "fog scale must be positive, got %v", cfg.Fog.Scale)
	check(cfg.Render.VolumetricFogAmbient >= 0, "volumetric fog ambient must not be negative, got %v", cfg.Render.VolumetricFogAmbient)
	if _, ok := parseTonemapping(cfg.Render.Tonemapping); !ok {
		check(false, "unknown tonemapping %q", cfg.Render.Tonemapping)
	}

	return errors.Join(errs...)
}

func parseTonemapping(s string) (Tonemapping, bool) {
	for _, t := range []Tonemapping{TonemappingNone, TonemappingReinhard, TonemappingAcesFitted} {
		if t.String() == s {
			return t, true
		}
	}
	return TonemappingNone, false
}

// MsaaSamples is the sample count handed to the camera.
func (r RenderConfig) MsaaSamples() int {
	if r.Msaa {
		return 2
	}
	return 1
}
