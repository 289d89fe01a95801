package signals

import "sync/atomic"

// maxSignal bounds signal numbers on every supported platform (NSIG on linux).
const maxSignal = 65

type pendingCall struct {
	run  func(Info)
	info Info
}

// Dispatcher decides when a delivered signal reaches its handler. In async
// mode the handler runs as soon as the signal is delivered. In queued mode it
// is parked until the next Poll, with at most one pending dispatch per signal
// number: further deliveries of a signal that is already pending coalesce.
//
// Submit and Poll take no locks.
type Dispatcher struct {
	async   atomic.Bool
	pending [maxSignal]atomic.Pointer[pendingCall]
}

// DefaultDispatcher is the process-wide dispatch mode shared by bridges that
// are not given one with WithDispatcher. It starts in async mode.
var DefaultDispatcher = NewDispatcher(true)

func NewDispatcher(async bool) *Dispatcher {
	d := &Dispatcher{}
	d.async.Store(async)
	return d
}

// SetAsync switches the dispatch mode and returns the previous one. Turning
// async mode on dispatches anything still pending.
func (d *Dispatcher) SetAsync(enabled bool) (previous bool) {
	previous = d.async.Swap(enabled)
	if enabled && !previous {
		d.Poll()
	}
	return previous
}

func (d *Dispatcher) Async() bool { return d.async.Load() }

// Pending reports whether a dispatch for signo is waiting for Poll.
func (d *Dispatcher) Pending(signo int) bool {
	if signo <= 0 || signo >= maxSignal {
		return false
	}
	return d.pending[signo].Load() != nil
}

// Poll runs every pending dispatch, in ascending signal order, on the calling
// goroutine. It returns how many ran.
func (d *Dispatcher) Poll() int {
	n := 0
	for i := range d.pending {
		if c := d.pending[i].Swap(nil); c != nil {
			c.run(c.info)
			n++
		}
	}
	return n
}

// Submit hands one delivery of signo to run, now or at the next Poll. It
// returns false when the delivery coalesced with one already pending.
func (d *Dispatcher) Submit(signo int, info Info, run func(Info)) bool {
	if d.async.Load() || signo <= 0 || signo >= maxSignal {
		run(info)
		return true
	}
	if !d.pending[signo].CompareAndSwap(nil, &pendingCall{run: run, info: info}) {
		return false
	}
	// the mode may have flipped to async after the check above
	if d.async.Load() {
		d.Poll()
	}
	return true
}
