// Package sink defines the minimal logging contract the signal bridge emits
// through, together with a zerolog adapter and an in-memory recorder.
//
// Both implementations here are safe to call from the signal delivery path:
// the Go runtime hands signals to an ordinary goroutine, so an Emit never runs
// inside an interrupted frame.
package sink

// Sink accepts log records. Emit reports whether at least one downstream
// consumer accepted the record.
type Sink interface {
	Emit(level Level, msg string, ctx map[string]any) bool
}

// Func is an adapter to allow the use of ordinary functions as a Sink.
type Func func(level Level, msg string, ctx map[string]any) bool

// Emit calls f(level, msg, ctx).
func (f Func) Emit(level Level, msg string, ctx map[string]any) bool {
	return f(level, msg, ctx)
}
