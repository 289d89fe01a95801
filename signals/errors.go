package signals

import (
	"fmt"
	"syscall"

	"github.com/pkg/errors"

	"github.com/srozzo/go-siglog/sink"
)

var (
	ErrClosed        = errors.New("signals: bridge closed")
	ErrNotRegistered = errors.New("signals: signal not registered")

	// ErrNoIntrospection is returned by a Facade that cannot report the
	// current disposition. The registry treats it as a degraded capability
	// and captures the default action instead.
	ErrNoIntrospection = errors.New("signals: disposition introspection unavailable")

	// ErrInterrupted is the cause of a context from Bridge.Interruptible
	// cancelled by a non-restarting signal. It matches syscall.EINTR.
	ErrInterrupted error = interruptedError{}

	// ErrNoDefaultAction is returned by Facade.Raise when the platform
	// default action could not be performed, typically because the Go
	// runtime keeps its own handler for the signal and drops it.
	ErrNoDefaultAction = errors.New("signals: default action not performed")
)

type interruptedError struct{}

func (interruptedError) Error() string        { return "signals: interrupted system call" }
func (interruptedError) Is(target error) bool { return target == syscall.EINTR }

// UnsupportedSignalError reports a signal number the platform cannot control.
type UnsupportedSignalError struct {
	Signo  int
	Reason string
}

func (e *UnsupportedSignalError) Error() string {
	return fmt.Sprintf("signals: unsupported signal %d: %s", e.Signo, e.Reason)
}

// InvalidSeverityError reports a level outside the sink's recognised set.
type InvalidSeverityError struct {
	Level sink.Level
}

func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("signals: invalid severity %s", e.Level)
}

// InvalidDispositionError reports a restore with a stale or foreign handle.
type InvalidDispositionError struct {
	Signo  int
	Reason string
}

func (e *InvalidDispositionError) Error() string {
	return fmt.Sprintf("signals: cannot restore disposition of %s: %s", Name(e.Signo), e.Reason)
}

// Delivery stages a fault can occur in.
const (
	StageEmit    = "emit"
	StageForward = "forward"
	StageDeliver = "deliver" // a delegate called by System outside any bridge
)

// DeliveryHandlerFault describes a panic or error raised while a delivery was
// being handled. It is reported on the bridge logger and never propagated.
type DeliveryHandlerFault struct {
	Signo int
	Stage string
	Value any
}

func (f *DeliveryHandlerFault) Error() string {
	return fmt.Sprintf("signals: fault during %s of %s: %v", f.Stage, Name(f.Signo), f.Value)
}

func (f *DeliveryHandlerFault) Unwrap() error {
	err, _ := f.Value.(error)
	return err
}
