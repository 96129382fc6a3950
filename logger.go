package semgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with semgo-specific context.
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

// WithName adds an entry name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogAdd logs a vocabulary add operation.
func (l *Logger) LogAdd(ctx context.Context, name string, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add failed",
			"name", name,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "add completed",
			"name", name,
			"dimension", dimension,
		)
	}
}

// LogBind logs a binding operation.
func (l *Logger) LogBind(ctx context.Context, a, b, result string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bind failed",
			"a", a,
			"b", b,
			"result", result,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "bind completed",
			"a", a,
			"b", b,
			"result", result,
		)
	}
}

// LogUnbind logs an unbinding operation.
func (l *Logger) LogUnbind(ctx context.Context, bound, key, result string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "unbind failed",
			"bound", bound,
			"key", key,
			"result", result,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "unbind completed",
			"bound", bound,
			"key", key,
			"result", result,
		)
	}
}

// LogCleanup logs a cleanup operation.
func (l *Logger) LogCleanup(ctx context.Context, name string, iterations int, converged bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "cleanup failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "cleanup completed",
			"name", name,
			"iterations", iterations,
			"converged", converged,
		)
	}
}

// LogSnapshot logs a snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, filename string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"filename", filename,
		)
	}
}
