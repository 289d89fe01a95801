package signals

import (
	"fmt"
	"sync/atomic"
)

// Kind tags a Disposition.
type Kind uint8

const (
	KindDefault Kind = iota
	KindIgnore
	KindDelegate
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindIgnore:
		return "ignore"
	case KindDelegate:
		return "delegate"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Delegate is a handler installed for a signal.
type Delegate func(signo int, info Info)

// Disposition is the action taken when a signal arrives: the platform
// default, ignore, or a delegate. Delegates carry a process-unique id, so two
// dispositions are Equal only if they came from the same DelegateTo call.
type Disposition struct {
	kind Kind
	id   uint64
	fn   Delegate
}

var delegateIDs atomic.Uint64

func DefaultAction() Disposition { return Disposition{kind: KindDefault} }

func IgnoreAction() Disposition { return Disposition{kind: KindIgnore} }

// DelegateTo wraps fn in a new delegate disposition. It panics on a nil fn.
func DelegateTo(fn Delegate) Disposition {
	if fn == nil {
		panic("signals: nil delegate")
	}
	return Disposition{kind: KindDelegate, id: delegateIDs.Add(1), fn: fn}
}

func (d Disposition) Kind() Kind { return d.kind }

// ID is zero for the default and ignore actions.
func (d Disposition) ID() uint64 { return d.id }

func (d Disposition) Equal(o Disposition) bool { return d.kind == o.kind && d.id == o.id }

func (d Disposition) String() string {
	if d.kind == KindDelegate {
		return fmt.Sprintf("delegate#%d", d.id)
	}
	return d.kind.String()
}

// Apply performs d as the previous disposition of a delivery that is
// already being handled. The ignore action is a no-op, a delegate is called
// with info marked as forwarded, and the default action is handed to raise.
func (d Disposition) Apply(signo int, info Info, raise func(signo int) error) error {
	switch d.kind {
	case KindIgnore:
		return nil
	case KindDelegate:
		info.forwarded = true
		d.fn(signo, info)
		return nil
	default:
		return raise(signo)
	}
}

// Call hands a fresh arrival of signo to a delegate. Facades use it; it
// does nothing for the default and ignore actions.
func (d Disposition) Call(signo int, info Info) {
	if d.kind == KindDelegate {
		d.fn(signo, info)
	}
}

// Sigaction is the full per-signal state a Facade reports and installs:
// the disposition plus whether interrupted blocking calls restart.
type Sigaction struct {
	Disposition Disposition
	Restart     bool
}
