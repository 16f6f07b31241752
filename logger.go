package orixdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/orixdb/orixdb/internal/manifest"
)

// Logger wraps slog.Logger with orixdb-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// loggerFor builds the logger a store asks for in its manifest, writing text
// to w. verbose forces debug output.
func loggerFor(mode manifest.LogLevel, verbose bool, w io.Writer) *Logger {
	level, enabled := mode.SlogLevel()
	switch {
	case verbose:
		level = slog.LevelDebug
	case !enabled:
		return NoopLogger()
	}
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithStore adds the store id to the logger.
func (l *Logger) WithStore(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", id),
	}
}

// LogOpen logs the outcome of opening a store.
func (l *Logger) LogOpen(ctx context.Context, root string, kind manifest.StoreType, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"root", root,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "store opened",
		"root", root,
		"kind", kind.String(),
		"duration", duration,
	)
}

// LogVersionSkew logs a minor version difference between store and engine.
func (l *Logger) LogVersionSkew(ctx context.Context, store, engine manifest.Version, decision manifest.Decision) {
	switch decision {
	case manifest.DecisionWarn:
		l.WarnContext(ctx, "store was written by an older engine; consider upgrading it",
			"store_version", store.String(),
			"engine_version", engine.String(),
		)
	case manifest.DecisionConfirm:
		l.WarnContext(ctx, "store was written by a newer engine; some features may be unavailable",
			"store_version", store.String(),
			"engine_version", engine.String(),
		)
	}
}

// LogIndexLoaded logs the outcome of decoding one index file.
func (l *Logger) LogIndexLoaded(ctx context.Context, kind, path string, files, entries int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index load failed",
			"index", kind,
			"path", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "index loaded",
		"index", kind,
		"files", files,
		"entries", entries,
		"duration", duration,
	)
}

// LogInitialize logs the outcome of creating a store.
func (l *Logger) LogInitialize(ctx context.Context, root, id string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "store creation failed",
			"root", root,
			"id", id,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "store created",
		"root", root,
		"id", id,
	)
}
