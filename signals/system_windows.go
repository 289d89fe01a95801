//go:build windows

package signals

import (
	"os"
	"syscall"
)

// Windows has no way to read a console control handler back, so the
// registry degrades to capturing the default action.
const canIntrospect = false

func checkSupported(signo int) error {
	switch syscall.Signal(signo) {
	case syscall.SIGINT, syscall.SIGTERM:
		return nil
	}
	return &UnsupportedSignalError{Signo: signo, Reason: "only SIGINT and SIGTERM are delivered on windows"}
}

func defaultIgnores(syscall.Signal) bool { return false }

// raise terminates the process, which is the default action for both
// supported signals.
func (f *systemFacade) raise(sig syscall.Signal) error {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return err
	}
	return p.Kill()
}
