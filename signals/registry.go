package signals

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Handle is a captured disposition. It restores exactly once, and only as
// long as no newer capture of the same signal has been taken.
type Handle struct {
	signo    int
	gen      uint64
	action   Sigaction
	degraded bool
}

func (h Handle) Signo() int { return h.signo }

func (h Handle) Action() Sigaction { return h.action }

// Degraded reports that the facade could not introspect the signal and the
// handle holds the default action in its place.
func (h Handle) Degraded() bool { return h.degraded }

func (h Handle) IsZero() bool { return h.gen == 0 }

// Registry records the dispositions preempted by a bridge so they can be
// restored or forwarded to later.
type Registry struct {
	mu     sync.Mutex
	facade Facade
	logger zerolog.Logger
	gen    uint64
	live   map[int]uint64
}

func NewRegistry(f Facade, logger zerolog.Logger) *Registry {
	return &Registry{
		facade: f,
		logger: logger,
		live:   make(map[int]uint64),
	}
}

// Capture reads the current disposition of signo without altering it.
// A facade without introspection yields a degraded handle for the default
// action rather than an error.
func (r *Registry) Capture(signo int) (Handle, error) {
	act, err := r.facade.Current(signo)
	degraded := false
	if err != nil {
		if !errors.Is(err, ErrNoIntrospection) {
			return Handle{}, err
		}
		act = Sigaction{Disposition: DefaultAction(), Restart: true}
		degraded = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if degraded {
		r.logger.Debug().Int(KeySigno, signo).Msg("signals: no introspection, assuming default action")
	}
	r.gen++
	r.live[signo] = r.gen
	r.logger.Debug().Int(KeySigno, signo).Stringer("previous", act.Disposition).Uint64("gen", r.gen).Msg("signals: captured")
	return Handle{signo: signo, gen: r.gen, action: act, degraded: degraded}, nil
}

// Restore reinstalls the disposition held by h.
func (r *Registry) Restore(signo int, h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case h.IsZero():
		return &InvalidDispositionError{Signo: signo, Reason: "empty handle"}
	case h.signo != signo:
		return &InvalidDispositionError{Signo: signo, Reason: "handle was captured for " + Name(h.signo)}
	case r.live[signo] != h.gen:
		return &InvalidDispositionError{Signo: signo, Reason: "stale handle"}
	}
	if err := r.facade.Set(signo, h.action); err != nil {
		return errors.Wrapf(err, "signals: restore %s", Name(signo))
	}
	delete(r.live, signo)
	r.logger.Debug().Int(KeySigno, signo).Stringer("disposition", h.action.Disposition).Msg("signals: restored")
	return nil
}

// Release forgets h without touching the facade.
func (r *Registry) Release(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !h.IsZero() && r.live[h.signo] == h.gen {
		delete(r.live, h.signo)
	}
}

// SetLogger replaces the diagnostics logger.
func (r *Registry) SetLogger(l zerolog.Logger) {
	r.mu.Lock()
	r.logger = l
	r.mu.Unlock()
}

// Held reports whether a restorable handle exists for signo.
func (r *Registry) Held(signo int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.live[signo]
	return ok
}
