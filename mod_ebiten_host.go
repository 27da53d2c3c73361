package cornellbox

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenHostModule runs the app inside an Ebitengine window. It supplies the
// input source, the font-backed text measurer, the draw systems and the runner.
type EbitenHostModule struct {
	Window WindowConfig
	// A borderless fullscreen window has no close button.
	CloseOnEscape bool
}

func NewEbitenHostModule(window WindowConfig) EbitenHostModule {
	return EbitenHostModule{Window: window, CloseOnEscape: true}
}

// EbitenCanvas is the screen image, valid only while render stages run.
type EbitenCanvas struct {
	Screen *ebiten.Image
}

type ebitenHost struct {
	app    *App
	window WindowConfig
	canvas *EbitenCanvas
	width  int
	height int
}

func (mod EbitenHostModule) Install(app *App, cmd *Commands) {
	host := &ebitenHost{
		app:    app,
		window: mod.Window,
		canvas: &EbitenCanvas{},
	}

	if input, ok := Resource[Input](app); ok {
		input.SetSource(host)
	} else {
		app.UseModules(InputModule{Source: host})
	}
	if _, ok := Resource[UiState](app); !ok {
		app.UseModules(UiModule{})
	}
	if _, ok := Resource[GizmoFrame](app); !ok {
		app.UseModules(GizmoModule{})
	}

	ui, _ := Resource[UiState](app)
	fonts, err := newFontCache()
	if err != nil {
		cmd.Logger().Warnf("font unavailable, using approximate text metrics: %v", err)
	} else {
		ui.Measure = fonts.measure
	}

	cmd.AddResources(host.canvas, fonts)
	if mod.CloseOnEscape {
		app.UseSystem(System(closeOnEscapeSystem).InStage(PreUpdate))
	}
	app.UseSystem(System(drawGizmosSystem).InStage(Render))
	app.UseSystem(System(drawUiSystem).InStage(PostRender))
	app.UseRunner(host)
}

func closeOnEscapeSystem(cmd *Commands, input *Input) {
	if input.JustPressed[KeyEscape] {
		cmd.Logger().Infof("escape pressed, exiting")
		cmd.Exit()
	}
}

func (h *ebitenHost) Run(app *App) error {
	ebiten.SetWindowTitle(h.window.Title)
	if h.window.Width > 0 && h.window.Height > 0 {
		ebiten.SetWindowSize(h.window.Width, h.window.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(h.window.Fullscreen)
	ebiten.SetVsyncEnabled(h.window.Vsync)
	// One update per rendered frame so the fps diagnostic measures frames.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	app.Logger().Infof("opening window %q (fullscreen=%v vsync=%v)", h.window.Title, h.window.Fullscreen, h.window.Vsync)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

func (h *ebitenHost) Update() error {
	h.app.Update()
	if h.app.ExitRequested() {
		return ebiten.Termination
	}
	return nil
}

func (h *ebitenHost) Draw(screen *ebiten.Image) {
	h.canvas.Screen = screen
	screen.Fill(clearColor)
	h.app.Draw()
	h.canvas.Screen = nil
}

func (h *ebitenHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// InputSource

func (h *ebitenHost) CursorPosition() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < h.width && y < h.height
	return float64(x), float64(y), inside
}

func (h *ebitenHost) IsPressed(key int) bool {
	switch key {
	case MouseButtonLeft:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	case MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case MouseButtonMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	}
	if k, ok := keyToEbiten[key]; ok {
		return ebiten.IsKeyPressed(k)
	}
	return false
}

func (h *ebitenHost) WindowSize() (int, int) {
	return h.width, h.height
}

var keyToEbiten = map[int]ebiten.Key{
	KeyEscape: ebiten.KeyEscape,
	KeyEnter:  ebiten.KeyEnter,
	KeySpace:  ebiten.KeySpace,
	KeyF11:    ebiten.KeyF11,
}
