package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// failingHandler always returns an error from Handle.
type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }
func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return f }
func (f failingHandler) WithGroup(string) slog.Handler           { return f }

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		nil,
		slog.NewJSONHandler(&b, nil),
	))

	logger.Info("spawned", "index", 1)

	assert.Contains(t, a.String(), "spawned")
	assert.Contains(t, b.String(), `"index":1`)
}

func TestMultiHandler_LevelPerHandler(t *testing.T) {
	var debug, errOnly bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errOnly, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	logger.Debug("detail")
	logger.Error("broken")

	assert.Contains(t, debug.String(), "detail")
	assert.Contains(t, debug.String(), "broken")
	assert.NotContains(t, errOnly.String(), "detail")
	assert.Contains(t, errOnly.String(), "broken")
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_ContinuesAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(failingHandler{}, slog.NewTextHandler(&buf, nil))

	err := slog.New(h).Handler().Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "still written", 0))

	assert.Error(t, err)
	assert.Contains(t, buf.String(), "still written")
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMultiHandler(slog.NewJSONHandler(&buf, nil))).
		With("run", "abc").
		WithGroup("spawn")

	logger.Info("ok", "index", 0)

	assert.Contains(t, buf.String(), `"run":"abc"`)
	assert.Contains(t, buf.String(), `"spawn":{"index":0}`)
}
