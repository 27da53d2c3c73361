package cornellbox

import (
	"github.com/gekko3d/cornellbox/control"
)

// LightControl is the slider-driven intensity state shared by the light
// control systems.
type LightControl struct {
	control.State
	Base   control.Intensities
	Slider control.Slider

	intensityGate control.Gate
	knobGate      control.Gate
}

// SliderDrag is true while the primary button drags the slider.
type SliderDrag struct {
	control.Drag
}

type SliderTrack struct{}

type SliderKnob struct{}

var (
	sliderTrackColor  = [4]float32{0.2, 0.2, 0.22, 1}
	sliderTrackBorder = [4]float32{0.9, 0.9, 0.95, 1}
	sliderKnobColor   = [4]float32{0.95, 0.95, 0.98, 1}
	sliderKnobBorder  = [4]float32{0.1, 0.1, 0.12, 1}
)

// LightControlModule installs the intensity slider. The three update systems
// run in order each frame: pointer input, light intensities, knob position.
type LightControlModule struct {
	Config CornellConfig
}

func (mod LightControlModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(
		&LightControl{
			State:  mod.Config.Control,
			Base:   mod.Config.Lights.Base,
			Slider: mod.Config.Slider,
		},
		&SliderDrag{},
	)

	app.UseSystem(System(setupSliderSystem).InStage(Startup))
	app.UseSystem(System(sliderInputSystem).InStage(Update))
	app.UseSystem(System(applyIntensitySystem).InStage(Update))
	app.UseSystem(System(sliderVisualSystem).InStage(Update))
}

func setupSliderSystem(cmd *Commands, ctl *LightControl) {
	s := ctl.Slider
	root := cmd.AddEntity(&UiNode{
		Bottom: Px(s.BottomMarginPx),
		Left:   Percent(50),
	})
	track := cmd.AddEntity(
		&UiNode{
			Bottom:      Px(0),
			Left:        Px(-s.WidthPx * 0.5),
			Width:       Px(s.WidthPx),
			Height:      Px(s.HeightPx),
			Background:  sliderTrackColor,
			BorderColor: sliderTrackBorder,
			BorderWidth: 1,
		},
		&Parent{Entity: root},
		&SliderTrack{},
	)
	cmd.AddEntity(
		&UiNode{
			Bottom:      Px(-(s.KnobSizePx - s.HeightPx) * 0.5),
			Left:        Px(0),
			Width:       Px(s.KnobSizePx),
			Height:      Px(s.KnobSizePx),
			Background:  sliderKnobColor,
			BorderColor: sliderKnobBorder,
			BorderWidth: 1,
		},
		&Parent{Entity: track},
		&SliderKnob{},
	)
}

func sliderInputSystem(input *Input, ctl *LightControl, drag *SliderDrag) {
	if input.WindowWidth == 0 || input.WindowHeight == 0 {
		return
	}
	hit := ctl.Slider.HitRect(float32(input.WindowWidth), float32(input.WindowHeight))
	pointer := control.Pointer{
		X:            float32(input.MouseX),
		Y:            float32(input.MouseY),
		Present:      input.CursorInWindow,
		Pressed:      input.Pressed[MouseButtonLeft],
		JustPressed:  input.JustPressed[MouseButtonLeft],
		JustReleased: input.JustReleased[MouseButtonLeft],
	}
	control.Track(&ctl.State, &drag.Drag, pointer, hit)
}

func applyIntensitySystem(cmd *Commands, ctl *LightControl) {
	if !ctl.intensityGate.Changed(ctl.Value) {
		return
	}
	multiplier := ctl.Multiplier()
	n := 0
	MakeQuery2[LightComponent, CeilingLight](cmd).Map(func(eid EntityId, light *LightComponent, tag *CeilingLight) bool {
		light.Intensity = ctl.Base.For(tag.Center, multiplier)
		n++
		return true
	})
	cmd.Logger().Debugf("light multiplier %.2f applied to %d lights", multiplier, n)
}

func sliderVisualSystem(cmd *Commands, ctl *LightControl) {
	if !ctl.knobGate.Changed(ctl.Value) {
		return
	}
	left := ctl.Slider.KnobLeft(ctl.Value)
	MakeQuery2[UiNode, SliderKnob](cmd).Map(func(eid EntityId, node *UiNode, _ *SliderKnob) bool {
		node.Left = Px(left)
		return true
	})
}
