//go:build linux && (amd64 || arm64)

package signals

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// kernelSigaction is struct sigaction as rt_sigaction(2) takes it on amd64
// and arm64.
type kernelSigaction struct {
	handler  uintptr
	flags    uint64
	restorer uintptr
	mask     uint64
}

const sigsetSize = 8

func rtSigaction(sig syscall.Signal, act, old *kernelSigaction) error {
	_, _, errno := unix.RawSyscall6(unix.SYS_RT_SIGACTION, uintptr(sig),
		uintptr(unsafe.Pointer(act)), uintptr(unsafe.Pointer(old)), sigsetSize, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// raise swaps the runtime's handler for SIG_DFL and sends sig to the calling
// thread, so the kernel applies the default action before tgkill(2) returns.
// The runtime's handler is put back if the process is still running. The
// os/signal subscriptions are never touched.
func (f *systemFacade) raise(sig syscall.Signal) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var dfl, old kernelSigaction
	if err := rtSigaction(sig, &dfl, &old); err != nil {
		return errors.Wrapf(err, "signals: reset %s", Name(int(sig)))
	}
	err := unix.Tgkill(unix.Getpid(), unix.Gettid(), sig)
	if rerr := rtSigaction(sig, &old, nil); rerr != nil && err == nil {
		err = errors.Wrapf(rerr, "signals: reinstall handler for %s", Name(int(sig)))
	}
	if err == nil && !defaultStops(sig) {
		// only a stop action returns here, once continued
		err = errors.Wrap(ErrNoDefaultAction, Name(int(sig)))
	}
	return err
}
