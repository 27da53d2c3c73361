package cornellbox

import "fmt"

// FpsText tags the label whose second section shows the smoothed frame rate.
type FpsText struct{}

var fpsValueColor = [4]float32{1.0, 0.9, 0.2, 1}

type FpsDisplayModule struct {
	Config FpsConfig
}

func (mod FpsDisplayModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[Diagnostics](app); !ok {
		cmd.AddResources(NewDiagnostics())
	}
	cfg := mod.Config
	app.UseSystem(System(func(cmd *Commands) {
		cmd.AddEntity(
			&UiNode{Top: Px(cfg.Top), Right: Px(cfg.Right)},
			&UiText{Sections: []TextSection{
				{Value: "FPS: ", Size: cfg.TextSize, Color: [4]float32{1, 1, 1, 1}},
				{Value: "", Size: cfg.TextSize, Color: fpsValueColor},
			}},
			&FpsText{},
		)
	}).InStage(Startup))
	app.UseSystem(System(updateFpsTextSystem).InStage(Update))
}

func updateFpsTextSystem(cmd *Commands, diags *Diagnostics) {
	fps, ok := diags.Get(DiagnosticFPS)
	if !ok {
		return
	}
	value, ok := fps.Smoothed()
	if !ok {
		return
	}
	label := fmt.Sprintf("%.1f", value)
	MakeQuery2[UiText, FpsText](cmd).Map(func(eid EntityId, text *UiText, _ *FpsText) bool {
		if len(text.Sections) > 1 {
			text.Sections[1].Value = label
		}
		return true
	})
}
