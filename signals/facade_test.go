package signals

import (
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestGateFiresOnlyEarlierWaiters(t *testing.T) {
	var g Gate
	before := g.Wait()
	assert.Equal(t, before, g.Wait(), "waiters share one channel until Fire")

	g.Fire()
	after := g.Wait()
	assert.True(t, closed(before))
	assert.False(t, closed(after))

	g.Fire()
	assert.True(t, closed(after))
}

func TestGateFireWithoutWaiters(t *testing.T) {
	var g Gate
	g.Fire()
	assert.False(t, closed(g.Wait()))
}

func TestErrInterruptedMatchesEINTR(t *testing.T) {
	assert.True(t, errors.Is(ErrInterrupted, syscall.EINTR))
	assert.True(t, errors.Is(errors.Wrap(ErrInterrupted, "wait4"), syscall.EINTR))
	assert.False(t, errors.Is(ErrInterrupted, syscall.EAGAIN))
}

func TestDeliveryHandlerFaultUnwrap(t *testing.T) {
	cause := errors.New("sink closed")
	f := &DeliveryHandlerFault{Signo: int(syscall.SIGINT), Stage: StageEmit, Value: cause}
	assert.True(t, errors.Is(f, cause))
	assert.Contains(t, f.Error(), "SIGINT")

	f = &DeliveryHandlerFault{Signo: int(syscall.SIGINT), Stage: StageForward, Value: "boom"}
	assert.Nil(t, f.Unwrap())
	assert.Contains(t, f.Error(), "forward")
}
