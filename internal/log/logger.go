// Package log configures the process-wide structured logger. Each binary
// stamps its records with a component attribute so aggregated logs from the
// server and the two workers stay distinguishable.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger carrying the component it was created for.
type Logger struct {
	*slog.Logger
	component string
}

type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler // defaults to a text handler on stdout
}

// New builds a logger with the component attribute baked into every record.
func New(cfg Config) *Logger {
	handler := cfg.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.Level,
		})
	}

	return &Logger{
		Logger:    slog.New(handler).With("component", cfg.Component),
		component: cfg.Component,
	}
}

// With returns a logger carrying extra attributes on top of the component.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		component: l.component,
	}
}

// SetDefault routes package-level slog calls through this logger so records
// emitted deep inside internal packages carry the component attribute too.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
