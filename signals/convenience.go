package signals

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/srozzo/go-siglog/sink"
)

// Default is the bridge behind the package-level functions. It logs through
// the global zerolog logger.
var Default = New(sink.NewZerolog(nil))

// Register installs the Default bridge's handler for signo.
func Register(signo int, level sink.Level, p Policy) error {
	return Default.Register(signo, level, p)
}

// Unregister restores signo's previous disposition on the Default bridge.
func Unregister(signo int) error { return Default.Unregister(signo) }

// Close tears down the Default bridge. It cannot be reused afterwards.
func Close() error { return Default.Close() }

// HandleSignal runs the Default bridge's delivery logic for info.
func HandleSignal(info Info) { Default.Handle(info) }

// Interruptible is a convenience wrapper over Default.Interruptible.
func Interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	return Default.Interruptible(parent)
}

// SetAsyncDispatch switches DefaultDispatcher and returns the previous mode.
func SetAsyncDispatch(enabled bool) bool { return DefaultDispatcher.SetAsync(enabled) }

// Dispatch runs the deliveries pending on DefaultDispatcher.
func Dispatch() int { return DefaultDispatcher.Poll() }

// SetLogger sets the diagnostics logger of the Default bridge.
func SetLogger(l zerolog.Logger) { Default.SetLogger(l) }

// SetDebug toggles debug diagnostics on the Default bridge.
func SetDebug(enabled bool) { Default.SetDebug(enabled) }
