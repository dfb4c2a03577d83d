package lattice

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lattice-specific field names.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithCoord adds a coord field to the logger.
func (l *Logger) WithCoord(c any) *Logger {
	return &Logger{
		Logger: l.Logger.With("coord", c),
	}
}

// WithID adds an occupant id field to the logger.
func (l *Logger) WithID(id ID) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// LogBind logs a bind or set operation.
func (l *Logger) LogBind(id ID, c any, err error) {
	if err != nil {
		l.Warn("bind rejected",
			"id", id,
			"coord", c,
			"error", err,
		)
	} else {
		l.Debug("bind completed",
			"id", id,
			"coord", c,
		)
	}
}

// LogRelease logs a release operation.
func (l *Logger) LogRelease(c any, err error) {
	if err != nil {
		l.Warn("release rejected",
			"coord", c,
			"error", err,
		)
	} else {
		l.Debug("release completed",
			"coord", c,
		)
	}
}

// LogReleaseOccupant logs the release of one occupant from a shared site.
func (l *Logger) LogReleaseOccupant(id ID, c any, err error) {
	l.WithID(id).LogRelease(c, err)
}

// LogMove logs a batch move.
func (l *Logger) LogMove(count int, err error) {
	if err != nil {
		l.Warn("move rejected",
			"count", count,
			"error", err,
		)
	} else {
		l.Debug("move completed",
			"count", count,
		)
	}
}
