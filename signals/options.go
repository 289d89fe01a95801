package signals

import "github.com/rs/zerolog"

type Option func(*Bridge)

// WithFacade replaces the process signal table, typically with a
// sigtest.Facade.
func WithFacade(f Facade) Option {
	return func(b *Bridge) { b.facade = f }
}

// WithDispatcher gives the bridge its own dispatch mode instead of
// DefaultDispatcher.
func WithDispatcher(d *Dispatcher) Option {
	return func(b *Bridge) { b.dispatcher = d }
}

// WithLogger sets the logger for diagnostics and delivery faults.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bridge) { b.base = l }
}

func WithDebug(enabled bool) Option {
	return func(b *Bridge) { b.debug = enabled }
}
