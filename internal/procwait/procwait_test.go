//go:build unix

package procwait

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// TestHelperProcess is not a real test; it is the child started by the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PROCWAIT_HELPER") != "1" {
		return
	}
	ms, _ := strconv.Atoi(os.Getenv("PROCWAIT_SLEEP_MS"))
	code, _ := strconv.Atoi(os.Getenv("PROCWAIT_EXIT"))
	time.Sleep(time.Duration(ms) * time.Millisecond)
	os.Exit(code)
}

func startHelper(t *testing.T, sleep time.Duration, exit int) int {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(os.Environ(),
		"PROCWAIT_HELPER=1",
		"PROCWAIT_SLEEP_MS="+strconv.Itoa(int(sleep/time.Millisecond)),
		"PROCWAIT_EXIT="+strconv.Itoa(exit),
	)
	require.NoError(t, cmd.Start())
	return cmd.Process.Pid
}

func TestWaitReturnsExitStatus(t *testing.T) {
	pid := startHelper(t, 50*time.Millisecond, 3)

	ws, err := Wait(context.Background(), pid)
	require.NoError(t, err)
	assert.True(t, ws.Exited())
	assert.Equal(t, 3, ws.ExitStatus())
}

func TestWaitReturnsCauseAndLeavesChild(t *testing.T) {
	pid := startHelper(t, 5*time.Second, 0)
	stop := errors.New("stop waiting")

	ctx, cancel := context.WithCancelCause(context.Background())
	time.AfterFunc(30*time.Millisecond, func() { cancel(stop) })

	start := time.Now()
	_, err := Wait(ctx, pid)
	assert.True(t, errors.Is(err, stop))
	assert.Less(t, time.Since(start), time.Second)

	require.NoError(t, unix.Kill(pid, unix.SIGKILL))
	ws, err := Wait(context.Background(), pid)
	require.NoError(t, err)
	assert.True(t, ws.Signaled())
	assert.Equal(t, unix.SIGKILL, ws.Signal())
}

func TestWaitUnknownChild(t *testing.T) {
	_, err := Wait(context.Background(), 1<<22)
	require.Error(t, err)
	assert.True(t, errors.Is(err, unix.ECHILD))
}
