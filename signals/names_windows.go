//go:build windows

package signals

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

var windowsNames = map[syscall.Signal]string{
	syscall.SIGHUP:  "SIGHUP",
	syscall.SIGINT:  "SIGINT",
	syscall.SIGQUIT: "SIGQUIT",
	syscall.SIGKILL: "SIGKILL",
	syscall.SIGTERM: "SIGTERM",
}

func Name(signo int) string {
	if n, ok := windowsNames[syscall.Signal(signo)]; ok {
		return n
	}
	return fmt.Sprintf("signal %d", signo)
}

func Number(name string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if !strings.HasPrefix(s, "SIG") {
		s = "SIG" + s
	}
	for sig, n := range windowsNames {
		if n == s {
			return int(sig), nil
		}
	}
	return 0, errors.Errorf("signals: unknown signal name %q", name)
}
