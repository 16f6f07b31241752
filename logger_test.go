package orixdb

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/orixdb/orixdb/internal/manifest"
	"github.com/stretchr/testify/assert"
)

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).WithStore("orders")
	ctx := t.Context()

	l.LogVersionSkew(ctx, manifest.Version{Minor: 1}, manifest.Version{Minor: 2}, manifest.DecisionWarn)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"store":"orders"`)
	assert.Contains(t, buf.String(), `"store_version":"0.1.0"`)

	buf.Reset()
	l.LogVersionSkew(ctx, manifest.Version{}, manifest.Version{}, manifest.DecisionProceed)
	assert.Empty(t, buf.String())

	l.LogIndexLoaded(ctx, "singletons", "/s", 1, 2, time.Millisecond, nil)
	assert.Contains(t, buf.String(), `"entries":2`)

	buf.Reset()
	l.LogOpen(ctx, "/root", manifest.Live, time.Millisecond, errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	l.LogInitialize(ctx, "/root", "orders", nil)
	assert.Contains(t, buf.String(), "store created")
}

func TestLoggerFor(t *testing.T) {
	ctx := t.Context()

	assert.False(t, loggerFor(manifest.LogOff, false, io.Discard).Enabled(ctx, slog.LevelError))
	assert.True(t, loggerFor(manifest.LogOff, true, io.Discard).Enabled(ctx, slog.LevelDebug))
	assert.False(t, loggerFor(manifest.LogMinimal, false, io.Discard).Enabled(ctx, slog.LevelInfo))
	assert.True(t, loggerFor(manifest.LogMinimal, false, io.Discard).Enabled(ctx, slog.LevelWarn))
	assert.True(t, loggerFor(manifest.LogDetailed, false, io.Discard).Enabled(ctx, slog.LevelDebug))
	assert.False(t, NoopLogger().Enabled(ctx, slog.LevelError))
}
