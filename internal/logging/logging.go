// Package logging provides the shared logger used across the renderer.
//
// By default nothing is logged. Applications embedding the renderer call
// SetLogger once at startup to receive diagnostics.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for all renderer packages.
// Pass nil to disable logging (restore the default silent behavior).
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame diagnostics (paint timings, cache stats)
//   - [slog.LevelInfo]: lifecycle events (window created, atlas rebuilt)
//   - [slog.LevelWarn]: non-fatal issues (skipped glyph, clipboard failure)
//   - [slog.LevelError]: abandoned frames, failed recoveries
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
