package asynctask

import (
	"io"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logging surface used for executor and timed
// service lifecycle events (worker start/growth/shrink/exit, shutdown, heap wake
// anomalies). It is never used to log task values or failures: those
// propagate through the value store to the awaiter, per the package's
// error handling design (see doc.go).
type Logger = *logiface.Logger[*stumpy.Event]

var globalLogger struct {
	sync.RWMutex
	logger Logger
}

func init() {
	globalLogger.logger = newNoOpLogger()
}

// SetLogger installs the package-wide [Logger], used by every executor and
// the timed service; there is no per-executor logger. Passing nil restores
// the no-op default.
func SetLogger(l Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	if l == nil {
		l = newNoOpLogger()
	}
	globalLogger.logger = l
}

func newNoOpLogger() Logger {
	return stumpy.L.New(stumpy.L.WithStumpy(stumpy.WithWriter(io.Discard)))
}

func getGlobalLogger() Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}

// NewJSONLogger returns a Logger that writes newline-delimited JSON to w,
// suitable for passing to SetLogger.
func NewJSONLogger(w io.Writer) Logger {
	return stumpy.L.New(stumpy.L.WithStumpy(stumpy.WithWriter(w)))
}
