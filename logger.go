package ar

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

// SetLogger configures the logger for ar and all its sub-packages.
// By default, ar produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by ar:
//   - [slog.LevelDebug]: per-hit diagnostics (candidate counts, match keys)
//   - [slog.LevelInfo]: backend lifecycle events (backend selected, closed)
//   - [slog.LevelWarn]: non-fatal issues (pose update for an unknown anchor)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	ar.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	ar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by ar.
// Sub-packages (backend/, backend/replay/) call this to share the same
// logger configuration without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LoggerSetter is implemented by tracking backends that accept a logger.
// Session passes the active logger to its backend on creation when the
// backend supports it.
type LoggerSetter interface {
	SetLogger(*slog.Logger)
}
