package cornellbox

// AppBuilder collects modules and installs them in order on Build.
type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: NewApp()}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

func (b *AppBuilder) Build() *App {
	return b.app.UseModules(b.modules...)
}
