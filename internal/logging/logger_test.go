package logging

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.FatalLevel, GetLevel("fatal"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("info"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("no-such-level"))
}

func TestSetup_FileOutput(t *testing.T) {
	defer logrus.SetOutput(logrus.StandardLogger().Out)

	logFile := filepath.Join(t.TempDir(), "gymlog")
	Setup(LoggerSetupParams{
		LogFileName: logFile,
		LogLevel:    "debug",
	})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSentryHook_Fire(t *testing.T) {
	var captured []*sentry.Event
	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel})
	hook.capture = func(event *sentry.Event) {
		captured = append(captured, event)
	}
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	now := time.Now()
	entry := &logrus.Entry{
		Level:   logrus.ErrorLevel,
		Message: "failed to add workout",
		Time:    now,
		Data: logrus.Fields{
			"exercise": "Squat",
			"error":    errors.New("disk full"),
		},
	}
	require.NoError(t, hook.Fire(entry))
	require.Len(t, captured, 1)

	ev := captured[0]
	assert.Equal(t, sentry.LevelError, ev.Level)
	assert.Equal(t, "failed to add workout", ev.Message)
	assert.Equal(t, now, ev.Timestamp)
	assert.Equal(t, "Squat", ev.Extra["exercise"])
	assert.Equal(t, "disk full", ev.Extra["error"])
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.FatalLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelInfo, sentryLevel(logrus.InfoLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(logrus.TraceLevel))
}
