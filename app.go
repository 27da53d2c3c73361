package cornellbox

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module bundles resources and systems. Install is called once, in order.
type Module interface {
	Install(app *App, cmd *Commands)
}

// Runner owns the frame loop. It calls App.Update and App.Draw once per frame
// until App.ExitRequested reports true.
type Runner interface {
	Run(app *App) error
}

var ErrNoRunner = errors.New("no runner installed")

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	ecs       *Ecs
	runner    Runner

	started       bool
	exitRequested bool

	// Command Buffering
	pendingAdditions []pendingAdd
	pendingRemovals  []EntityId
	pendingCompAdds  []pendingCompAdd
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompAdd struct {
	eid        EntityId
	components []any
}

func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		ecs:       &ecs,
	}
	for _, stage := range defaultStages() {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

// UseRunner installs the frame loop owner. Only one runner may be installed.
func (app *App) UseRunner(runner Runner) *App {
	if app.runner != nil {
		panic(fmt.Sprintf("runner already installed: %T", app.runner))
	}
	app.runner = runner
	return app
}

// Run hands control to the installed runner and blocks until it returns.
func (app *App) Run() error {
	if app.runner == nil {
		return ErrNoRunner
	}
	if err := app.runner.Run(app); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// Update advances the simulation by one frame. Startup stages run on the first call only.
func (app *App) Update() {
	if !app.started {
		app.started = true
		app.callStages(StartupUpdate)
	}
	app.callStages(DynamicUpdate)
}

// Draw runs the render stages for the current frame.
func (app *App) Draw() {
	app.callStages(DrawUpdate)
}

func (app *App) ExitRequested() bool {
	return app.exitRequested
}

func (app *App) callStages(updateType UpdateType) {
	for _, stage := range app.stages {
		if stage.UpdateType != updateType {
			continue
		}
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType == nil || resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource must be a pointer, got %T", resource))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type T if one was added.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			app.panicUnresolved(systemValue, systemType, argType)
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			app.panicUnresolved(systemValue, systemType, argType)
		}
	}
	systemValue.Call(args)
}

func (app *App) panicUnresolved(systemValue reflect.Value, systemType, argType reflect.Type) {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(systemValue.Pointer()).Name(),
		fmt.Sprint(systemType),
		fmt.Sprint(argType),
	)
	app.Logger().Errorf("%s", msg)
	panic(msg)
}

func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 && len(app.pendingCompAdds) == 0 {
		return
	}

	// 1. Process Removals first (so we don't add to dead entities)
	for _, eid := range app.pendingRemovals {
		app.Logger().Debugf("removing entity %v", eid)
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	// 2. Process Additions
	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	// 3. Process Component Additions
	for _, add := range app.pendingCompAdds {
		if !app.ecs.hasEntity(add.eid) {
			continue
		}
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]
}
