// Package sigtest provides an in-memory signals.Facade for tests. Nothing in
// it touches the real process signal table.
package sigtest

import (
	"sync"

	"github.com/srozzo/go-siglog/signals"
)

// Facade is a fake process signal table. Deliveries are simulated with
// Deliver and run synchronously on the calling goroutine.
type Facade struct {
	// NoIntrospection makes Current report signals.ErrNoIntrospection.
	NoIntrospection bool
	// SetErr, when non-nil, is returned by every Set.
	SetErr error

	mu          sync.Mutex
	actions     map[int]signals.Sigaction
	unsupported map[int]bool
	raised      []int
	gate        signals.Gate
}

func New() *Facade {
	return &Facade{
		actions:     make(map[int]signals.Sigaction),
		unsupported: make(map[int]bool),
	}
}

// Unsupport makes the given signal numbers fail like an uncatchable signal.
func (f *Facade) Unsupport(signos ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range signos {
		f.unsupported[s] = true
	}
}

// Preset installs a as if some other code had done so before the test.
func (f *Facade) Preset(signo int, a signals.Sigaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions[signo] = a
}

// Action returns what is currently installed for signo.
func (f *Facade) Action(signo int) signals.Sigaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actionLocked(signo)
}

func (f *Facade) actionLocked(signo int) signals.Sigaction {
	if a, ok := f.actions[signo]; ok {
		return a
	}
	return signals.Sigaction{Disposition: signals.DefaultAction(), Restart: true}
}

func (f *Facade) Current(signo int) (signals.Sigaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unsupported[signo] {
		return signals.Sigaction{}, &signals.UnsupportedSignalError{Signo: signo, Reason: "unsupported by fake"}
	}
	if f.NoIntrospection {
		return signals.Sigaction{Disposition: signals.DefaultAction(), Restart: true}, signals.ErrNoIntrospection
	}
	return f.actionLocked(signo), nil
}

func (f *Facade) Set(signo int, a signals.Sigaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unsupported[signo] {
		return &signals.UnsupportedSignalError{Signo: signo, Reason: "unsupported by fake"}
	}
	if f.SetErr != nil {
		return f.SetErr
	}
	f.actions[signo] = a
	return nil
}

// Raise records signo instead of performing the default action.
func (f *Facade) Raise(signo int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raised = append(f.raised, signo)
	return nil
}

// Raised lists every default action taken, in order.
func (f *Facade) Raised() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.raised...)
}

func (f *Facade) Interrupted() <-chan struct{} { return f.gate.Wait() }

// Deliver simulates the arrival of info.Signo. A delegate runs on the
// calling goroutine, the default action is recorded as raised, and an ignore
// action does nothing. It reports whether a delegate ran.
func (f *Facade) Deliver(info signals.Info) bool {
	f.mu.Lock()
	a := f.actionLocked(info.Signo)
	f.mu.Unlock()

	switch a.Disposition.Kind() {
	case signals.KindDelegate:
		a.Disposition.Call(info.Signo, info)
		if !a.Restart {
			f.gate.Fire()
		}
		return true
	case signals.KindDefault:
		_ = f.Raise(info.Signo)
	}
	return false
}

// Signal is Deliver with only the signal number set.
func (f *Facade) Signal(signo int) bool {
	return f.Deliver(signals.Info{Signo: signo})
}
