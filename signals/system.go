package signals

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog"
)

// systemFacade drives the real process signal table through os/signal.
//
// The Go runtime owns the underlying sigaction(2) handlers and always installs
// them with SA_RESTART, retrying EINTR inside the standard library. A
// non-restarting action is therefore expressed through the Interrupted gate,
// which blocking calls opt into with Bridge.Interruptible.
//
// Subscriptions other code made with signal.Notify are invisible here:
// Current reports such a signal as default, and forwarding to that default
// performs the platform action regardless of them. Installing the default
// action only drops the facade's own subscription, so theirs survive it.
type systemFacade struct {
	mu      sync.Mutex // serialises Set
	chans   [maxSignal]atomic.Pointer[chan os.Signal]
	actions atomic.Pointer[map[int]Sigaction]
	gate    Gate
	logger  atomic.Pointer[zerolog.Logger]
}

var system = sync.OnceValue(func() *systemFacade {
	f := &systemFacade{}
	m := make(map[int]Sigaction)
	f.actions.Store(&m)
	l := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	f.logger.Store(&l)
	return f
})

// System returns the facade over the real process signal table. It is shared
// by every bridge in the process.
func System() Facade { return system() }

// SetSystemLogger replaces the logger System reports faults of delegates
// installed outside a bridge on.
func SetSystemLogger(l zerolog.Logger) { system().logger.Store(&l) }

func (f *systemFacade) Current(signo int) (Sigaction, error) {
	if err := checkSupported(signo); err != nil {
		return Sigaction{}, err
	}
	if a, ok := (*f.actions.Load())[signo]; ok {
		return a, nil
	}
	if !canIntrospect {
		return Sigaction{Disposition: DefaultAction(), Restart: true}, ErrNoIntrospection
	}
	if signal.Ignored(syscall.Signal(signo)) {
		return Sigaction{Disposition: IgnoreAction(), Restart: true}, nil
	}
	return Sigaction{Disposition: DefaultAction(), Restart: true}, nil
}

func (f *systemFacade) Set(signo int, a Sigaction) error {
	if err := checkSupported(signo); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// a delegate is published before it can be delivered to, anything else
	// only once the subscription is gone
	if a.Disposition.kind == KindDelegate {
		f.store(signo, a)
		f.apply(signo, a.Disposition)
		return nil
	}
	f.apply(signo, a.Disposition)
	f.store(signo, a)
	return nil
}

// store records delegates only. Default and ignore are read back from the
// runtime, which stays authoritative when other code calls os/signal.
func (f *systemFacade) store(signo int, a Sigaction) {
	old := *f.actions.Load()
	next := make(map[int]Sigaction, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	if a.Disposition.kind == KindDelegate {
		next[signo] = a
	} else {
		delete(next, signo)
	}
	f.actions.Store(&next)
}

func (f *systemFacade) apply(signo int, d Disposition) {
	sig := syscall.Signal(signo)
	switch d.kind {
	case KindIgnore:
		signal.Ignore(sig)
	case KindDelegate:
		signal.Notify(f.channel(signo), sig)
	default:
		if ch := f.chans[signo].Load(); ch != nil {
			signal.Stop(*ch)
		}
		if signal.Ignored(sig) {
			signal.Reset(sig)
		}
	}
}

// channel returns signo's subscription channel, starting its loop on first
// use. Callers hold f.mu.
func (f *systemFacade) channel(signo int) chan os.Signal {
	if ch := f.chans[signo].Load(); ch != nil {
		return *ch
	}
	ch := make(chan os.Signal, 4)
	f.chans[signo].Store(&ch)
	go f.loop(ch)
	return ch
}

// Raise performs the platform default action for signo. Signals whose
// default is to ignore them are left alone. It takes no lock.
func (f *systemFacade) Raise(signo int) error {
	if err := checkSupported(signo); err != nil {
		return err
	}
	sig := syscall.Signal(signo)
	if defaultIgnores(sig) {
		return nil
	}
	return f.raise(sig)
}

func (f *systemFacade) Interrupted() <-chan struct{} { return f.gate.Wait() }

func (f *systemFacade) loop(ch chan os.Signal) {
	for sig := range ch {
		if s, ok := sig.(syscall.Signal); ok {
			f.deliver(int(s))
		}
	}
}

func (f *systemFacade) deliver(signo int) {
	a, ok := (*f.actions.Load())[signo]
	if !ok || a.Disposition.kind != KindDelegate {
		// queued on the channel before a Set replaced the delegate
		return
	}
	defer func() {
		// a delegate installed without a bridge may panic; the loop must survive it
		if r := recover(); r != nil {
			fault := &DeliveryHandlerFault{Signo: signo, Stage: StageDeliver, Value: r}
			f.logger.Load().Error().Err(fault).Int(KeySigno, signo).Str("stage", StageDeliver).
				Msg("signals: delivery handler fault")
		}
		if !a.Restart {
			f.gate.Fire()
		}
	}()
	a.Disposition.Call(signo, Info{Signo: signo})
}
