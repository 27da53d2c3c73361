package cornellbox

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)

	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)

	assert.Panics(t, func() { app.addResources(MockResource1{}) }, "resources are pointers")
}

func TestApp_SystemOrder(t *testing.T) {
	app := NewApp()
	var calls []string
	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}

	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("update-1")))
	app.UseSystem(System(record("update-2")))
	app.UseSystem(System(record("startup")).InStage(Startup))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("post")).InStage(PostUpdate))

	app.Update()
	app.Draw()
	assert.Equal(t, []string{"startup", "prelude", "update-1", "update-2", "post", "render"}, calls)

	calls = nil
	app.Update()
	assert.Equal(t, []string{"prelude", "update-1", "update-2", "post"}, calls, "startup runs once")
}

func TestApp_SystemResolvesResources(t *testing.T) {
	app := NewApp()
	res := NewMockResource1("a")
	app.UseModules(moduleFunc(func(app *App, cmd *Commands) {
		cmd.AddResources(res)
	}))

	var seen *MockResource1
	var sawCommands bool
	app.UseSystem(System(func(cmd *Commands, r *MockResource1) {
		sawCommands = cmd != nil
		seen = r
	}))
	app.Update()

	assert.True(t, sawCommands)
	assert.Same(t, res, seen)
}

func TestApp_UnresolvedSystemPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(r *MockResource2) {}))
	assert.Panics(t, func() { app.Update() })
}

func TestApp_CommandsFlushAtStageEnd(t *testing.T) {
	type Marker struct{ N int }

	app := NewApp()
	var countedInSameStage, countedLater int

	app.UseSystem(System(func(cmd *Commands) {
		cmd.AddEntity(&Marker{N: 1})
		countedInSameStage = MakeQuery1[Marker](cmd).Count()
	}).InStage(Startup))
	app.UseSystem(System(func(cmd *Commands) {
		countedLater = MakeQuery1[Marker](cmd).Count()
	}).InStage(Prelude))

	app.Update()

	assert.Equal(t, 0, countedInSameStage)
	assert.Equal(t, 1, countedLater)
}

func TestApp_RemoveAndAddComponents(t *testing.T) {
	type A struct{ V int }
	type B struct{ V int }

	app := NewApp()
	cmd := app.Commands()
	keep := cmd.AddEntity(&A{V: 1})
	drop := cmd.AddEntity(&A{V: 2})
	app.FlushCommands()

	cmd.RemoveEntity(drop)
	cmd.AddComponents(keep, &B{V: 3})
	cmd.AddComponents(drop, &B{V: 4})
	app.FlushCommands()

	assert.ElementsMatch(t, []any{A{V: 1}, B{V: 3}}, cmd.GetAllComponents(keep))
	assert.Empty(t, cmd.GetAllComponents(drop))
}

func TestApp_UseStage(t *testing.T) {
	app := NewApp()
	custom := Stage{Name: "Custom", UpdateType: DynamicUpdate}
	app.UseStage(custom, AfterStage(Update))

	var calls []string
	app.UseSystem(System(func() { calls = append(calls, "custom") }).InStage(custom))
	app.UseSystem(System(func() { calls = append(calls, "post") }).InStage(PostUpdate))
	app.UseSystem(System(func() { calls = append(calls, "update") }))
	app.Update()

	assert.Equal(t, []string{"update", "custom", "post"}, calls)
	assert.Panics(t, func() { app.UseStage(custom, BeforeStage(Update)) })
	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "Missing"})) })
}

type countingRunner struct {
	frames int
	err    error
}

func (r *countingRunner) Run(app *App) error {
	for !app.ExitRequested() {
		app.Update()
		app.Draw()
		r.frames++
	}
	return r.err
}

func TestApp_RunUntilExit(t *testing.T) {
	app := NewApp()
	assert.ErrorIs(t, app.Run(), ErrNoRunner)

	frame := 0
	app.UseSystem(System(func(cmd *Commands) {
		frame++
		if frame == 3 {
			cmd.Exit()
		}
	}))
	runner := &countingRunner{}
	app.UseRunner(runner)
	require.NoError(t, app.Run())
	assert.Equal(t, 3, runner.frames)

	assert.Panics(t, func() { app.UseRunner(&countingRunner{}) })
}

func TestApp_RunWrapsRunnerError(t *testing.T) {
	boom := errors.New("boom")
	app := NewApp()
	app.UseSystem(System(func(cmd *Commands) { cmd.Exit() }))
	app.UseRunner(&countingRunner{err: boom})

	err := app.Run()
	assert.ErrorIs(t, err, boom)
}

type moduleFunc func(app *App, cmd *Commands)

func (f moduleFunc) Install(app *App, cmd *Commands) { f(app, cmd) }
