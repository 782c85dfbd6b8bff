package webmesh

import (
	"context"
	"log/slog"
	"os"

	"github.com/particleforge/webmesh/mesh"
)

// Logger wraps slog.Logger with webmesh-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds a web name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogFind logs a neighbor search.
func (l *Logger) LogFind(ctx context.Context, k, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "neighbor search failed",
			"k", k,
			"points", points,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "neighbor search completed",
			"k", k,
			"points", points,
		)
	}
}

// LogSync logs a mesh synchronization.
func (l *Logger) LogSync(ctx context.Context, stats mesh.Stats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sync failed",
			"name", stats.Name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "sync completed",
			"name", stats.Name,
			"vertices", stats.Vertices,
			"edges", stats.Edges,
			"mode", stats.LastMode.String(),
		)
	}
}

// LogSnapshot logs a snapshot publish.
func (l *Logger) LogSnapshot(ctx context.Context, blob string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"blob", blob,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot published",
			"blob", blob,
		)
	}
}

// LogRestore logs a snapshot restore.
func (l *Logger) LogRestore(ctx context.Context, blob string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"blob", blob,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "restore completed",
			"blob", blob,
		)
	}
}
