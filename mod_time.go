package cornellbox

import (
	"time"
)

// Time is the frame clock. Time stays zero until the first frame, and that
// frame reports a zero Dt.
type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	advanceTime(timeResource, time.Now())
}

func advanceTime(timeResource *Time, now time.Time) {
	if timeResource.Time.IsZero() {
		timeResource.Dt = 0
	} else {
		timeResource.Dt = now.Sub(timeResource.Time)
	}
	timeResource.Time = now
	timeResource.Frame++
}
