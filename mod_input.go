package cornellbox

const (
	KeyEscape int = iota
	KeyEnter
	KeySpace
	KeyF11
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

const keyCount = MouseButtonMiddle + 1

// InputSource is polled once per frame by the input system. The host backend
// provides one; tests provide fakes.
type InputSource interface {
	// CursorPosition reports the cursor in window pixels, origin top-left.
	// ok is false while the cursor is outside the window.
	CursorPosition() (x, y float64, ok bool)
	IsPressed(key int) bool
	WindowSize() (width, height int)
}

type InputModule struct {
	Source InputSource
}

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY float64
	CursorInWindow bool

	WindowWidth, WindowHeight int

	source InputSource
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{source: mod.Source})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

// SetSource swaps the backend polled by the input system.
func (input *Input) SetSource(source InputSource) {
	input.source = source
}

func inputSystem(input *Input) {
	if input.source == nil {
		return
	}
	pollInput(input, input.source)
}

func pollInput(input *Input, source InputSource) {
	for key := 0; key < keyCount; key++ {
		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if source.IsPressed(key) {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	// Last known position is kept while the cursor is away.
	if mx, my, ok := source.CursorPosition(); ok {
		input.MouseX = mx
		input.MouseY = my
		input.CursorInWindow = true
	} else {
		input.CursorInWindow = false
	}

	input.WindowWidth, input.WindowHeight = source.WindowSize()
}
