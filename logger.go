package rf

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

// SetLogger configures the logger used by rf and every sub-package
// (backend, texture, pixel, font, mesh). By default rf produces no log
// output. Pass nil to restore the silent default.
//
// The sub-packages reach for the top-level slog functions directly
// (slog.Warn, and similar) rather than threading a *slog.Logger parameter
// through every constructor, so SetLogger also calls slog.SetDefault —
// this is the one process-wide sink the "log warning and return sentinel"
// error policy writes to.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
//
// Log levels used by rf:
//   - [slog.LevelDebug]: internal diagnostics (extension probing, buffer sizes)
//   - [slog.LevelInfo]: lifecycle events (backend profile selected, context bootstrapped)
//   - [slog.LevelWarn]: non-fatal issues (capability missing, decode failure, GPU resource failure)
//
// Example:
//
//	// Enable debug-level logging to stderr:
//	rf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	slog.SetDefault(l)
}

// Logger returns the logger currently configured via SetLogger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
