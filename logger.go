package pixelmap

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pixelmap/alloc"
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

// SetLogger configures the logger for pixelmap and the default allocator
// table. By default, pixelmap produces no log output.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by pixelmap:
//   - [slog.LevelDebug]: transform targets, allocations
//   - [slog.LevelWarn]: failed transforms and allocations, release errors,
//     transforms skipped for unsupported formats
//
// Example:
//
//	pixelmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	defaultTableMu.Lock()
	t := defaultTable
	defaultTableMu.Unlock()
	if t != nil {
		propagateLogger(t, l)
	}
}

// Logger returns the current logger used by pixelmap.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by allocator tables and strategies that
// accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to v if it implements loggerSetter.
func propagateLogger(v any, l *slog.Logger) {
	if ls, ok := v.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

var (
	defaultTableMu sync.Mutex
	defaultTable   *alloc.Table
)

// defaultAllocators returns the table used when no WithAllocators option
// is given. It is created on first use with the current logger.
func defaultAllocators() *alloc.Table {
	defaultTableMu.Lock()
	defer defaultTableMu.Unlock()
	if defaultTable == nil {
		defaultTable = alloc.DefaultTable()
		propagateLogger(defaultTable, Logger())
	}
	return defaultTable
}
