//go:build unix && !(linux && (amd64 || arm64))

package signals

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// raiseSettle is how long raise waits for a process-directed signal to be
// taken before the caller carries on.
const raiseSettle = 20 * time.Millisecond

// raise drops the facade's own subscription and lets the runtime handle a
// re-sent sig. The runtime only applies the default action to signals it
// terminates on by itself and when nobody else is subscribed; otherwise
// ErrNoDefaultAction is returned.
func (f *systemFacade) raise(sig syscall.Signal) error {
	signo := int(sig)
	ch := f.chans[signo].Load()
	if ch != nil {
		signal.Stop(*ch)
	}
	err := unix.Kill(unix.Getpid(), sig)
	if err == nil {
		time.Sleep(raiseSettle)
	}
	// a Set racing with this may have replaced the delegate; deliver drops
	// arrivals that find no delegate in the table
	if a, ok := (*f.actions.Load())[signo]; ok && a.Disposition.kind == KindDelegate && ch != nil {
		signal.Notify(*ch, sig)
	}
	if err != nil {
		return errors.Wrapf(err, "signals: raise %s", Name(signo))
	}
	if !defaultStops(sig) {
		return errors.Wrap(ErrNoDefaultAction, Name(signo))
	}
	return nil
}
