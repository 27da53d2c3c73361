package cornellbox

import (
	"fmt"
	"strings"
	"time"
)

type DiagnosticPath string

const (
	DiagnosticFPS        DiagnosticPath = "fps"
	DiagnosticFrameTime  DiagnosticPath = "frame_time"
	DiagnosticFrameCount DiagnosticPath = "frame_count"
)

const DefaultDiagnosticHistory = 120

// Diagnostic is a bounded history of measurements with an exponential moving
// average on top.
type Diagnostic struct {
	Path    DiagnosticPath
	Suffix  string
	history []float64
	maxLen  int
	ema     float64
	alpha   float64
	hasEma  bool
}

func NewDiagnostic(path DiagnosticPath, suffix string, maxHistory int) *Diagnostic {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &Diagnostic{
		Path:   path,
		Suffix: suffix,
		maxLen: maxHistory,
		alpha:  2.0 / (float64(maxHistory) + 1.0),
	}
}

func (d *Diagnostic) Add(value float64) {
	if len(d.history) == d.maxLen {
		copy(d.history, d.history[1:])
		d.history = d.history[:len(d.history)-1]
	}
	d.history = append(d.history, value)

	if !d.hasEma {
		d.ema = value
		d.hasEma = true
		return
	}
	d.ema += (value - d.ema) * d.alpha
}

// Value is the latest measurement.
func (d *Diagnostic) Value() (float64, bool) {
	if len(d.history) == 0 {
		return 0, false
	}
	return d.history[len(d.history)-1], true
}

// Smoothed is the exponential moving average, absent until the first measurement.
func (d *Diagnostic) Smoothed() (float64, bool) {
	return d.ema, d.hasEma
}

func (d *Diagnostic) Average() (float64, bool) {
	if len(d.history) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range d.history {
		sum += v
	}
	return sum / float64(len(d.history)), true
}

func (d *Diagnostic) Len() int { return len(d.history) }

func (d *Diagnostic) Clear() {
	d.history = d.history[:0]
	d.ema = 0
	d.hasEma = false
}

// Diagnostics stores named measurements in registration order.
type Diagnostics struct {
	order []DiagnosticPath
	byKey map[DiagnosticPath]*Diagnostic
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{byKey: make(map[DiagnosticPath]*Diagnostic)}
}

// Register adds a diagnostic; registering an existing path returns the existing one.
func (s *Diagnostics) Register(d *Diagnostic) *Diagnostic {
	if existing, ok := s.byKey[d.Path]; ok {
		return existing
	}
	s.order = append(s.order, d.Path)
	s.byKey[d.Path] = d
	return d
}

func (s *Diagnostics) Get(path DiagnosticPath) (*Diagnostic, bool) {
	d, ok := s.byKey[path]
	return d, ok
}

// Add records a measurement for a registered path. Unknown paths are ignored.
func (s *Diagnostics) Add(path DiagnosticPath, value float64) {
	if d, ok := s.byKey[path]; ok {
		d.Add(value)
	}
}

func (s *Diagnostics) String() string {
	var b strings.Builder
	for _, path := range s.order {
		d := s.byKey[path]
		v, ok := d.Smoothed()
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%.2f%s", path, v, d.Suffix)
	}
	return b.String()
}

// FrameTimeDiagnosticsModule measures fps and frame time from the Time resource.
// LogInterval > 0 also logs a summary at that interval.
type FrameTimeDiagnosticsModule struct {
	MaxHistory  int
	LogInterval time.Duration
}

type frameDiagnosticsState struct {
	sinceLog    time.Duration
	logInterval time.Duration
}

func (mod FrameTimeDiagnosticsModule) Install(app *App, cmd *Commands) {
	history := mod.MaxHistory
	if history == 0 {
		history = DefaultDiagnosticHistory
	}
	diags, ok := Resource[Diagnostics](app)
	if !ok {
		diags = NewDiagnostics()
		cmd.AddResources(diags)
	}
	diags.Register(NewDiagnostic(DiagnosticFPS, "", history))
	diags.Register(NewDiagnostic(DiagnosticFrameTime, "ms", history))
	diags.Register(NewDiagnostic(DiagnosticFrameCount, "", history))

	cmd.AddResources(&frameDiagnosticsState{logInterval: mod.LogInterval})
	app.UseSystem(System(frameTimeDiagnosticsSystem).InStage(PreUpdate))
}

func frameTimeDiagnosticsSystem(cmd *Commands, t *Time, diags *Diagnostics, state *frameDiagnosticsState) {
	recordFrame(diags, t)

	if state.logInterval <= 0 {
		return
	}
	state.sinceLog += t.Dt
	if state.sinceLog >= state.logInterval {
		state.sinceLog = 0
		cmd.Logger().Infof("diagnostics: %s", diags)
	}
}

func recordFrame(diags *Diagnostics, t *Time) {
	diags.Add(DiagnosticFrameCount, float64(t.Frame))

	// A zero interval has no rate.
	if t.Dt <= 0 {
		return
	}
	secs := t.Dt.Seconds()
	diags.Add(DiagnosticFrameTime, secs*1000)
	diags.Add(DiagnosticFPS, 1/secs)
}
