package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		stdout.SetOutput(os.Stdout)
		stderr.SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, LevelWarn)

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN: shown 3")
	assert.Contains(t, out, "ERROR: shown 4")
}

func TestCallerIsReported(t *testing.T) {
	buf := captureLogs(t, LevelDebug)

	Debug("where am I")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestLogEventError(t *testing.T) {
	buf := captureLogs(t, LevelInfo)

	LogEventError("order.placed", "o1", errors.New("broker down"))
	assert.Contains(t, buf.String(), "WARN: Event publish failed: type=order.placed, subject=o1, error=broker down")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" Debug ")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, l)

	l, err = ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
