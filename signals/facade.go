package signals

import "sync/atomic"

// Facade is the process signal table. Bridges talk to the operating system
// only through a Facade, so tests can substitute sigtest.Facade and leave the
// real process state alone.
type Facade interface {
	// Current reads the installed action for signo without altering it.
	// It returns *UnsupportedSignalError for numbers the platform cannot
	// control, and ErrNoIntrospection when it cannot tell.
	Current(signo int) (Sigaction, error)

	// Set installs a for signo. A delegate disposition receives every
	// subsequent delivery of signo.
	Set(signo int, a Sigaction) error

	// Raise performs the platform default action for signo. It may not
	// return if that action terminates or stops the process, and returns
	// ErrNoDefaultAction if the action could not be performed.
	Raise(signo int) error

	// Interrupted returns a channel closed by the next delivery of a signal
	// whose action does not restart interrupted calls.
	Interrupted() <-chan struct{}
}

// Gate is a broadcast that can fire any number of times. Each Wait channel
// is closed by the first Fire after it was obtained. The zero value is ready.
type Gate struct {
	ch atomic.Pointer[chan struct{}]
}

func (g *Gate) Wait() <-chan struct{} {
	for {
		if p := g.ch.Load(); p != nil {
			return *p
		}
		ch := make(chan struct{})
		if g.ch.CompareAndSwap(nil, &ch) {
			return ch
		}
	}
}

func (g *Gate) Fire() {
	ch := make(chan struct{})
	if old := g.ch.Swap(&ch); old != nil {
		close(*old)
	}
}
