package cornellbox

// CornellCoreModules is the scene, slider and diagnostics without a host. Input
// stays unsourced until a host or a test sets one.
func CornellCoreModules(cfg CornellConfig) []Module {
	return []Module{
		LoggingModule{Prefix: "cornellbox", Level: cfg.Log.Level},
		TimeModule{},
		InputModule{},
		UiModule{},
		AssetServerModule{},
		FrameTimeDiagnosticsModule{},
		CornellSceneModule{Config: cfg},
		LightControlModule{Config: cfg},
		FpsDisplayModule{Config: cfg.Fps},
		GizmoModule{},
	}
}

// CornellModules is the full application, hosted in an Ebitengine window.
func CornellModules(cfg CornellConfig) []Module {
	return append(CornellCoreModules(cfg), NewEbitenHostModule(cfg.Window))
}
