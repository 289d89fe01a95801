//go:build unix

package signals

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Name returns the canonical name of signo ("SIGINT", "SIGURG", ...), or
// "signal N" when the platform has no name for it.
func Name(signo int) string {
	if n := unix.SignalName(syscall.Signal(signo)); n != "" {
		return n
	}
	return fmt.Sprintf("signal %d", signo)
}

// Number resolves a signal name, with or without the SIG prefix and in any
// case, or a decimal signal number.
func Number(name string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if !strings.HasPrefix(s, "SIG") {
		s = "SIG" + s
	}
	if n := unix.SignalNum(s); n != 0 {
		return int(n), nil
	}
	return 0, errors.Errorf("signals: unknown signal name %q", name)
}
