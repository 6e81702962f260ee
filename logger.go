package vemcache

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vemcache-specific helpers so operations log
// with consistent field names.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, id string, dimension int) {
	l.DebugContext(ctx, "insert completed",
		"id", id,
		"dimension", dimension,
	)
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(ctx context.Context, id string, existed bool) {
	l.DebugContext(ctx, "remove completed",
		"id", id,
		"existed", existed,
	)
}

// LogSearch logs a k-nearest-neighbor search.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogDump logs a snapshot dump.
func (l *Logger) LogDump(ctx context.Context, filename string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dump failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dump saved",
			"filename", filename,
			"count", count,
		)
	}
}

// LogRestore logs a snapshot restore.
func (l *Logger) LogRestore(ctx context.Context, filename string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "restore completed",
			"filename", filename,
			"count", count,
		)
	}
}
