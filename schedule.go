package cornellbox

import (
	"fmt"
	"slices"
)

// UpdateType decides which App entry point runs a stage.
type UpdateType int

const (
	// StartupUpdate stages run once, before the first DynamicUpdate.
	StartupUpdate UpdateType = iota
	// DynamicUpdate stages run on every App.Update.
	DynamicUpdate
	// DrawUpdate stages run on every App.Draw.
	DrawUpdate
)

type Stage struct {
	Name       string
	UpdateType UpdateType
}

var (
	Startup    = Stage{Name: "Startup", UpdateType: StartupUpdate}
	Prelude    = Stage{Name: "Prelude", UpdateType: DynamicUpdate}
	PreUpdate  = Stage{Name: "PreUpdate", UpdateType: DynamicUpdate}
	Update     = Stage{Name: "Update", UpdateType: DynamicUpdate}
	PostUpdate = Stage{Name: "PostUpdate", UpdateType: DynamicUpdate}
	PreRender  = Stage{Name: "PreRender", UpdateType: DrawUpdate}
	Render     = Stage{Name: "Render", UpdateType: DrawUpdate}
	PostRender = Stage{Name: "PostRender", UpdateType: DrawUpdate}
)

func defaultStages() []Stage {
	return []Stage{Startup, Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender}
}

type systemScheduleBuilder struct {
	inStage Stage
	system  systemFn
}

// System wraps a system function for scheduling. Systems default to the Update stage.
func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  system,
		inStage: Update,
	}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  sched.system,
		inStage: s,
	}
}

type stagePosition int

const (
	stageBefore stagePosition = iota
	stageAfter
)

type stagePositionBuilder struct {
	position stagePosition
	target   Stage
}

func BeforeStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageBefore, target: s}
}

func AfterStage(s Stage) stagePositionBuilder {
	return stagePositionBuilder{position: stageAfter, target: s}
}

// UseStage inserts a custom stage relative to an existing one.
func (app *App) UseStage(stage Stage, where stagePositionBuilder) *App {
	stageIdx := slices.IndexFunc(app.stages, func(s Stage) bool { return s.Name == where.target.Name })
	if -1 == stageIdx {
		panic(fmt.Sprintf("Stage %v not found", where.target.Name))
	}
	if _, exists := app.systems[stage.Name]; exists {
		panic(fmt.Sprintf("Stage %v already exists", stage.Name))
	}

	insertAt := stageIdx
	if stageAfter == where.position {
		insertAt = stageIdx + 1
	}

	app.stages = slices.Insert(app.stages, insertAt, stage)
	app.systems[stage.Name] = make([]systemFn, 0)
	return app
}

// UseSystem appends a system to its stage. Systems inside a stage run in the
// order they were added.
func (app *App) UseSystem(system systemScheduleBuilder) *App {
	systems, ok := app.systems[system.inStage.Name]
	if !ok {
		panic(fmt.Sprintf("Stage %v doesn't exist", system.inStage.Name))
	}
	app.systems[system.inStage.Name] = append(systems, system.system)
	return app
}
