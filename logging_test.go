package cornellbox

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newDefaultLogger(&buf, "cornell", false, zerolog.WarnLevel)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	assert.Empty(t, buf.String())

	l.Warnf("lights %d", 4)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"module":"cornell"`)
	assert.Contains(t, buf.String(), `"message":"lights 4"`)

	buf.Reset()
	l.Errorf("boom")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestDefaultLogger_SetDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newDefaultLogger(&buf, "", false, zerolog.InfoLevel)
	assert.False(t, l.DebugEnabled())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("flush %v", 7)
	assert.Contains(t, buf.String(), `"message":"flush 7"`)
	assert.NotContains(t, buf.String(), `"module"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLogLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("verbose"))
}

func TestApp_LoggerFallback(t *testing.T) {
	var app *App
	assert.NotNil(t, app.Logger())

	app = NewApp()
	assert.IsType(t, &nopLogger{}, app.Logger())

	var buf bytes.Buffer
	app.UseModules(LoggingModule{Prefix: "test", Level: "debug", Output: &buf})
	logger := app.Logger()
	assert.True(t, logger.DebugEnabled())
	logger.Infof("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
