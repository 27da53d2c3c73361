package cornellbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeInputSource struct {
	x, y          float64
	inside        bool
	pressed       map[int]bool
	width, height int
}

func newFakeInputSource(w, h int) *fakeInputSource {
	return &fakeInputSource{pressed: map[int]bool{}, width: w, height: h}
}

func (f *fakeInputSource) CursorPosition() (float64, float64, bool) { return f.x, f.y, f.inside }
func (f *fakeInputSource) IsPressed(key int) bool                 { return f.pressed[key] }
func (f *fakeInputSource) WindowSize() (int, int)                 { return f.width, f.height }

func (f *fakeInputSource) moveTo(x, y float64) {
	f.x, f.y, f.inside = x, y, true
}

func TestInput_ButtonEdges(t *testing.T) {
	src := newFakeInputSource(800, 600)
	input := &Input{source: src}

	src.pressed[MouseButtonLeft] = true
	inputSystem(input)
	assert.True(t, input.Pressed[MouseButtonLeft])
	assert.True(t, input.JustPressed[MouseButtonLeft])
	assert.False(t, input.JustReleased[MouseButtonLeft])

	inputSystem(input)
	assert.True(t, input.Pressed[MouseButtonLeft])
	assert.False(t, input.JustPressed[MouseButtonLeft], "edge lasts one frame")

	src.pressed[MouseButtonLeft] = false
	inputSystem(input)
	assert.False(t, input.Pressed[MouseButtonLeft])
	assert.True(t, input.JustReleased[MouseButtonLeft])

	inputSystem(input)
	assert.False(t, input.JustReleased[MouseButtonLeft])
}

func TestInput_CursorAndWindow(t *testing.T) {
	src := newFakeInputSource(1920, 1080)
	input := &Input{source: src}

	inputSystem(input)
	assert.False(t, input.CursorInWindow)
	assert.Equal(t, 1920, input.WindowWidth)
	assert.Equal(t, 1080, input.WindowHeight)

	src.moveTo(100, 200)
	inputSystem(input)
	assert.True(t, input.CursorInWindow)
	assert.Equal(t, 100.0, input.MouseX)
	assert.Equal(t, 200.0, input.MouseY)

	src.inside = false
	inputSystem(input)
	assert.False(t, input.CursorInWindow)
	assert.Equal(t, 100.0, input.MouseX, "last position kept")
}

func TestInput_NoSource(t *testing.T) {
	input := &Input{}
	inputSystem(input)
	assert.Zero(t, input.WindowWidth)

	input.SetSource(newFakeInputSource(10, 10))
	inputSystem(input)
	assert.Equal(t, 10, input.WindowWidth)
}
