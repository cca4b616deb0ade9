package logging

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("backup finished", "files", 12)

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "backup finished")
	assert.Contains(t, out, "files=12")
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelWarn, "no time", 0)
	require.NoError(t, h.Handle(t.Context(), r))

	assert.Equal(t, "WARN  no time\n", buf.String())
}

func TestHandler_Trace(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})

	r := slog.NewRecord(time.Time{}, LevelTrace, "entry", 0)
	require.NoError(t, h.Handle(t.Context(), r))

	assert.Equal(t, "TRACE entry\n", buf.String())
}

func TestHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).WithGroup("restore").With("target", "/game")

	logger.Info("cleanup", slog.Group("entry", "name", "log"))

	out := buf.String()
	assert.Contains(t, out, "restore.target=/game")
	assert.Contains(t, out, "restore.entry.name=log")
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}

func TestSupportsColor(t *testing.T) {
	t.Setenv("TERM", "xterm")
	assert.True(t, supportsColor(true))
	assert.False(t, supportsColor(false))

	t.Setenv("TERM", "dumb")
	assert.False(t, supportsColor(true))
}

func TestSupportsColor_NoColor(t *testing.T) {
	t.Setenv("TERM", "xterm")
	t.Setenv("NO_COLOR", "1")
	assert.False(t, supportsColor(true))
}

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
