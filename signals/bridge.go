// Package signals turns operating system signals into log records.
//
// A Bridge installs its own handler for each registered signal, remembering
// the disposition it preempted. Every delivery emits exactly one record
// through a sink.Sink and, when asked to, is then forwarded to that previous
// disposition. Logging always happens first, so a previous disposition that
// terminates the process cannot swallow the record.
//
// Deliveries reach handlers through a Dispatcher: immediately in async mode,
// or at the next Dispatcher.Poll in queued mode.
package signals

import (
	"context"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/srozzo/go-siglog/sink"
)

// registration is immutable once installed. The delivery path reads nothing
// else from the bridge.
type registration struct {
	signo     int
	level     sink.Level
	policy    Policy
	message   string
	previous  Handle
	installed Disposition
	run       func(Info)
}

// Bridge logs the signals registered on it through a sink.Sink. It is safe
// for concurrent use; the delivery path never takes its lock.
type Bridge struct {
	mu sync.Mutex

	// configuration
	sink       sink.Sink
	facade     Facade
	dispatcher *Dispatcher
	registry   *Registry
	base       zerolog.Logger
	debug      bool
	logger     atomic.Pointer[zerolog.Logger]

	// state
	closed bool
	regs   map[int]*registration
	order  []int // registration order, for teardown
}

// New returns a bridge emitting through s. Without options it drives the
// real process signal table through System and shares DefaultDispatcher.
func New(s sink.Sink, opts ...Option) *Bridge {
	b := &Bridge{
		sink: s,
		base: zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel),
		regs: make(map[int]*registration),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.facade == nil {
		b.facade = System()
	}
	if b.dispatcher == nil {
		b.dispatcher = DefaultDispatcher
	}
	l := b.effectiveLogger()
	b.logger.Store(&l)
	b.registry = NewRegistry(b.facade, l)
	return b
}

func (b *Bridge) effectiveLogger() zerolog.Logger {
	if b.debug {
		return b.base.Level(zerolog.DebugLevel)
	}
	return b.base
}

func (b *Bridge) log() *zerolog.Logger { return b.logger.Load() }

// Register installs the bridge's handler for signo, logging each delivery at
// level. The disposition in place before the first registration of signo is
// kept for forwarding and restoring; registering again only replaces level
// and policy. A failed registration leaves no state behind.
func (b *Bridge) Register(signo int, level sink.Level, p Policy) error {
	if !level.Valid() {
		return &InvalidSeverityError{Level: level}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	prev, existing := b.regs[signo]
	var previous Handle
	if existing {
		previous = prev.previous
		if cur, err := b.facade.Current(signo); err == nil && !cur.Disposition.Equal(prev.installed) {
			b.log().Warn().Int(KeySigno, signo).Stringer("found", cur.Disposition).
				Msgf("signals: handler for %s was replaced outside the bridge; overwriting", Name(signo))
		}
	} else {
		h, err := b.registry.Capture(signo)
		if err != nil {
			return err
		}
		previous = h
	}

	reg := &registration{
		signo:    signo,
		level:    level,
		policy:   p,
		message:  "Program received signal " + Name(signo),
		previous: previous,
	}
	reg.run = func(info Info) { b.handle(reg, info) }
	reg.installed = DelegateTo(func(_ int, info Info) {
		// a forwarded delivery is part of one already dispatched
		if info.Forwarded() {
			reg.run(info)
			return
		}
		b.dispatcher.Submit(reg.signo, info, reg.run)
	})

	if err := b.facade.Set(signo, Sigaction{Disposition: reg.installed, Restart: p.RestartSyscalls}); err != nil {
		if !existing {
			b.registry.Release(previous)
		}
		return errors.Wrapf(err, "signals: install handler for %s", Name(signo))
	}
	b.regs[signo] = reg
	if !existing {
		b.order = append(b.order, signo)
	}
	if p.Async != AsyncUnchanged {
		b.dispatcher.SetAsync(p.Async == AsyncEnable)
	}

	b.log().Debug().Int(KeySigno, signo).Str("level", level.String()).
		Bool("call_previous", p.CallPrevious).Bool("restart", p.RestartSyscalls).
		Stringer("async", p.Async).Stringer("previous", previous.action.Disposition).
		Msgf("signals: registered %s", Name(signo))
	return nil
}

// Unregister restores the disposition signo had before it was first
// registered.
func (b *Bridge) Unregister(signo int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unregisterLocked(signo)
}

func (b *Bridge) unregisterLocked(signo int) error {
	reg, ok := b.regs[signo]
	if !ok {
		return errors.Wrap(ErrNotRegistered, Name(signo))
	}
	if err := b.registry.Restore(signo, reg.previous); err != nil {
		return err
	}
	delete(b.regs, signo)
	for i, s := range b.order {
		if s == signo {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close unregisters every signal, most recent first, and rejects further
// registrations. It returns the first restore error, after attempting all.
// Closing twice is a no-op.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var first error
	order := append([]int(nil), b.order...)
	for i := len(order) - 1; i >= 0; i-- {
		if err := b.unregisterLocked(order[i]); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return errors.Wrap(first, "signals: close")
	}
	return nil
}

// Registration reports the level and policy signo is registered with.
func (b *Bridge) Registration(signo int) (sink.Level, Policy, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	reg, ok := b.regs[signo]
	if !ok {
		return 0, Policy{}, false
	}
	return reg.level, reg.policy, true
}

// Registered returns the registered signal numbers in ascending order.
func (b *Bridge) Registered() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, 0, len(b.regs))
	for s := range b.regs {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Dispatcher returns the dispatcher deliveries go through.
func (b *Bridge) Dispatcher() *Dispatcher { return b.dispatcher }

// Interruptible derives a context that is cancelled, with cause
// ErrInterrupted, by the next delivery of a signal registered without
// RestartSyscalls. Blocking calls waiting on it return early the way an
// interrupted system call would.
func (b *Bridge) Interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	intr := b.facade.Interrupted()
	go func() {
		select {
		case <-intr:
			cancel(ErrInterrupted)
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}

// Handle runs the delivery logic for info directly, without the facade or
// the dispatcher. An unregistered signal is logged at critical and not
// forwarded.
func (b *Bridge) Handle(info Info) {
	b.mu.Lock()
	reg := b.regs[info.Signo]
	b.mu.Unlock()
	if reg == nil {
		b.emit(info.Signo, sink.Critical, "Program received signal "+Name(info.Signo), info)
		return
	}
	b.handle(reg, info)
}

// handle is the delivery path. It takes no locks and never panics.
func (b *Bridge) handle(reg *registration, info Info) {
	if info.Signo == 0 {
		info.Signo = reg.signo
	}
	b.emit(reg.signo, reg.level, reg.message, info)
	if reg.policy.CallPrevious {
		b.forward(reg.signo, reg.previous.action.Disposition, info)
	}
}

func (b *Bridge) emit(signo int, level sink.Level, msg string, info Info) {
	defer b.contain(signo, StageEmit)
	if !b.sink.Emit(level, msg, info.Context()) {
		b.log().Debug().Int(KeySigno, signo).Msg("signals: record not accepted by sink")
	}
}

func (b *Bridge) forward(signo int, prev Disposition, info Info) {
	defer b.contain(signo, StageForward)
	if err := prev.Apply(signo, info, b.facade.Raise); err != nil {
		b.report(&DeliveryHandlerFault{Signo: signo, Stage: StageForward, Value: err})
	}
}

func (b *Bridge) contain(signo int, stage string) {
	if r := recover(); r != nil {
		b.report(&DeliveryHandlerFault{Signo: signo, Stage: stage, Value: r})
	}
}

// report is the fallback notification for faults on the delivery path.
func (b *Bridge) report(f *DeliveryHandlerFault) {
	defer func() { _ = recover() }()
	b.log().Error().Err(f).Int(KeySigno, f.Signo).Str("stage", f.Stage).Msg("signals: delivery handler fault")
}

// SetLogger replaces the diagnostics logger.
func (b *Bridge) SetLogger(l zerolog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.base = l
	b.refreshLoggerLocked()
}

// SetDebug toggles debug diagnostics.
func (b *Bridge) SetDebug(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.debug = enabled
	b.refreshLoggerLocked()
}

func (b *Bridge) refreshLoggerLocked() {
	l := b.effectiveLogger()
	b.logger.Store(&l)
	b.registry.SetLogger(l)
}
