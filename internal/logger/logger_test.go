package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestRedactsContactAndHashesSession(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "")
	l, logs := observed(t)

	l.Info("lead recorded", "contact", "kim@example.com", "session_id", "abc", "stage", "report-ready")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["contact"])
	assert.True(t, strings.HasPrefix(fields["session_id"].(string), "hash:"))
	assert.Equal(t, "report-ready", fields["stage"])
}

func TestRedactionCanBeDisabled(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "off")
	l, logs := observed(t)

	l.With("email", "kim@example.com").Warn("x")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kim@example.com", logs.All()[0].ContextMap()["email"])
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("x")
		l.With("a", 1).Error("y")
		NewNop().Debug("z", "odd")
	})
}
