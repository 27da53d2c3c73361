package cornellbox

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes leveled messages through zerolog. Debug output is
// gated by SetDebug, everything else by the configured level.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	level  zerolog.Level
	log    zerolog.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newDefaultLogger(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, prefix, debug, zerolog.InfoLevel)
}

func newDefaultLogger(w io.Writer, prefix string, debug bool, level zerolog.Level) *DefaultLogger {
	ctx := zerolog.New(w).With().Timestamp()
	if prefix != "" {
		ctx = ctx.Str("module", prefix)
	}
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		level:  level,
		log:    ctx.Logger(),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) emit(level zerolog.Level, format string, args ...any) {
	if level < l.level {
		return
	}
	l.log.WithLevel(level).Msg(fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.log.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.emit(zerolog.InfoLevel, format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.emit(zerolog.WarnLevel, format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.emit(zerolog.ErrorLevel, format, args...)
}

// ParseLogLevel maps "debug", "info", "warn" and "error" to zerolog levels.
// Anything else is info.
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Level  string
	// Output defaults to a console writer on stderr.
	Output io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	level := ParseLogLevel(m.Level)
	out := m.Output
	if out == nil {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02T15:04:05.000Z07:00"}
	}
	logger := newDefaultLogger(out, m.Prefix, level == zerolog.DebugLevel, level)
	app.addResources(logger)
}

// Nop logger and App helper accessor

type nopLogger struct{}

func NewNopLogger() Logger                                { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                   { return false }
func (n *nopLogger) SetDebug(enabled bool)                {}
func (n *nopLogger) Debugf(format string, args ...any)    {}
func (n *nopLogger) Infof(format string, args ...any)     {}
func (n *nopLogger) Warnf(format string, args ...any)     {}
func (n *nopLogger) Errorf(format string, args ...any)    {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	if app.resources != nil {
		for _, r := range app.resources {
			if l, ok := r.(Logger); ok {
				return l
			}
		}
	}
	return NewNopLogger()
}
