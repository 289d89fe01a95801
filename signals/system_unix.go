//go:build unix

package signals

import (
	"runtime"
	"syscall"

	"golang.org/x/sys/unix"
)

const canIntrospect = true

func checkSupported(signo int) error {
	limit := 32
	if runtime.GOOS == "linux" {
		limit = maxSignal - 1 // real-time signals up to SIGRTMAX
	}
	switch sig := syscall.Signal(signo); {
	case signo <= 0 || signo > limit:
		return &UnsupportedSignalError{Signo: signo, Reason: "out of range"}
	case sig == unix.SIGKILL || sig == unix.SIGSTOP:
		return &UnsupportedSignalError{Signo: signo, Reason: Name(signo) + " cannot be caught or ignored"}
	}
	return nil
}

// defaultIgnores reports signals whose default action leaves a running
// process alone.
func defaultIgnores(sig syscall.Signal) bool {
	switch sig {
	case unix.SIGCHLD, unix.SIGURG, unix.SIGWINCH, unix.SIGCONT:
		return true
	}
	// SIGINFO exists on the BSDs and darwin only
	return Name(int(sig)) == "SIGINFO"
}

// defaultStops reports signals whose default action stops the process.
func defaultStops(sig syscall.Signal) bool {
	switch sig {
	case unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU:
		return true
	}
	return false
}
