package cornellbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lightControlHarness struct {
	t   *testing.T
	app *App
	cmd *Commands
	src *fakeInputSource
}

func newLightControlHarness(t *testing.T, w, h int) *lightControlHarness {
	cfg := DefaultCornellConfig()
	src := newFakeInputSource(w, h)
	app := NewApp()
	app.UseModules(
		InputModule{Source: src},
		UiModule{},
		CornellSceneModule{Config: cfg},
		LightControlModule{Config: cfg},
	)
	return &lightControlHarness{t: t, app: app, cmd: app.Commands(), src: src}
}

func (h *lightControlHarness) frame() {
	h.app.Update()
	h.app.Draw()
}

func (h *lightControlHarness) press(x, y float64) {
	h.src.moveTo(x, y)
	h.src.pressed[MouseButtonLeft] = true
	h.frame()
}

func (h *lightControlHarness) release() {
	h.src.pressed[MouseButtonLeft] = false
	h.frame()
}

func (h *lightControlHarness) control() *LightControl {
	ctl, ok := Resource[LightControl](h.app)
	require.True(h.t, ok)
	return ctl
}

func (h *lightControlHarness) intensities() (center, other []float32) {
	MakeQuery2[LightComponent, CeilingLight](h.cmd).Map(func(_ EntityId, l *LightComponent, tag *CeilingLight) bool {
		if tag.Center {
			center = append(center, l.Intensity)
		} else {
			other = append(other, l.Intensity)
		}
		return true
	})
	return center, other
}

func (h *lightControlHarness) knob() UiNode {
	var knob UiNode
	MakeQuery2[UiNode, SliderKnob](h.cmd).Map(func(_ EntityId, n *UiNode, _ *SliderKnob) bool {
		knob = *n
		return false
	})
	return knob
}

func TestLightControl_InitialFrame(t *testing.T) {
	h := newLightControlHarness(t, 1920, 1080)
	h.frame()

	center, other := h.intensities()
	require.Len(t, center, 1)
	require.Len(t, other, 3)
	assert.InDelta(t, 14000, center[0], 1e-2)
	for _, v := range other {
		assert.InDelta(t, 7000, v, 1e-2)
	}

	knob := h.knob()
	assert.Equal(t, Px(80.5), knob.Left)
	assert.InDelta(t, 790+80.5, knob.Computed.X, 1e-3)
	assert.Equal(t, 1, MakeQuery1[SliderTrack](h.cmd).Count())
}

func TestLightControl_DragUpdatesLightsAndKnob(t *testing.T) {
	h := newLightControlHarness(t, 1920, 1080)
	h.frame()

	h.press(960, 1050)
	ctl := h.control()
	drag, _ := Resource[SliderDrag](h.app)
	assert.True(t, drag.Active)
	assert.InDelta(t, 0.5, ctl.Value, 1e-6)

	center, other := h.intensities()
	assert.InDelta(t, 28000, center[0], 1e-2)
	assert.InDelta(t, 14000, other[0], 1e-2)
	assert.InDelta(t, 790+161, h.knob().Computed.X, 1e-3)

	// Sticky: dragging far above the track keeps tracking x.
	h.src.moveTo(2000, 100)
	h.frame()
	assert.Equal(t, float32(1), ctl.Value)
	center, _ = h.intensities()
	assert.InDelta(t, 56000, center[0], 1e-2)

	h.release()
	assert.False(t, drag.Active)

	h.src.moveTo(790, 1050)
	h.frame()
	assert.Equal(t, float32(1), ctl.Value, "hover after release does nothing")
}

func TestLightControl_PressOutsideIgnored(t *testing.T) {
	h := newLightControlHarness(t, 1920, 1080)
	h.frame()

	h.press(960, 900)
	h.src.moveTo(1100, 1050)
	h.frame()

	assert.Equal(t, float32(0.25), h.control().Value)
	center, _ := h.intensities()
	assert.InDelta(t, 14000, center[0], 1e-2)
}

func TestLightControl_NoWindowSkipsInput(t *testing.T) {
	h := newLightControlHarness(t, 0, 0)
	h.press(10, 10)
	assert.Equal(t, float32(0.25), h.control().Value)
}

func TestLightControl_UnchangedValueSkipsWrites(t *testing.T) {
	h := newLightControlHarness(t, 1920, 1080)
	h.frame()

	MakeQuery1[LightComponent](h.cmd).Map(func(_ EntityId, l *LightComponent) bool {
		l.Intensity = 1
		return true
	})
	h.frame()
	center, _ := h.intensities()
	assert.Equal(t, float32(1), center[0], "gate closed while the value is unchanged")

	ctl := h.control()
	ctl.Value = 0
	h.frame()
	center, other := h.intensities()
	assert.Zero(t, center[0])
	assert.Zero(t, other[0])
	assert.Equal(t, Px(0), h.knob().Left)
}

func TestLightControl_SystemOrderWithinFrame(t *testing.T) {
	h := newLightControlHarness(t, 1920, 1080)
	h.frame()

	// Input, intensity and knob all reflect the press in the same frame.
	h.press(1130, 1024)
	center, _ := h.intensities()
	assert.InDelta(t, 56000, center[0], 1e-2)
	assert.Equal(t, Px(322), h.knob().Left)
}
