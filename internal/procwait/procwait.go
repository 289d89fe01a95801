//go:build unix

// Package procwait waits for child processes with wait4(2) in a way that a
// context can interrupt.
package procwait

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// PollInterval is how often Wait re-checks a running child.
const PollInterval = 5 * time.Millisecond

// Wait blocks until child pid exits and returns its status. If ctx ends
// first, Wait returns context.Cause(ctx) and leaves the child unreaped, so a
// later Wait can still collect it.
func Wait(ctx context.Context, pid int) (unix.WaitStatus, error) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		var ws unix.WaitStatus
		wpid, err := unix.Wait4(pid, &ws, unix.WNOHANG, nil)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return 0, errors.Wrapf(err, "procwait: wait4 %d", pid)
		case wpid == pid:
			return ws, nil
		}

		select {
		case <-ctx.Done():
			return 0, context.Cause(ctx)
		case <-ticker.C:
		}
	}
}
