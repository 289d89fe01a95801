//go:build unix

package signals_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srozzo/go-siglog/signals"
	"github.com/srozzo/go-siglog/signals/sigtest"
)

func TestCaptureDoesNotAlter(t *testing.T) {
	f := sigtest.New()
	f.Preset(sigURG, signals.Sigaction{Disposition: signals.IgnoreAction(), Restart: true})
	r := signals.NewRegistry(f, zerolog.Nop())

	h, err := r.Capture(sigURG)
	require.NoError(t, err)
	assert.Equal(t, sigURG, h.Signo())
	assert.Equal(t, signals.KindIgnore, h.Action().Disposition.Kind())
	assert.False(t, h.Degraded())
	assert.True(t, r.Held(sigURG))
	assert.Equal(t, signals.KindIgnore, f.Action(sigURG).Disposition.Kind())
}

func TestRestoreRejectsStaleAndForeignHandles(t *testing.T) {
	f := sigtest.New()
	r := signals.NewRegistry(f, zerolog.Nop())

	var invalid *signals.InvalidDispositionError

	err := r.Restore(sigUSR1, signals.Handle{})
	require.True(t, errors.As(err, &invalid))

	first, err := r.Capture(sigUSR1)
	require.NoError(t, err)
	second, err := r.Capture(sigUSR1)
	require.NoError(t, err)

	err = r.Restore(sigUSR1, first)
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "stale")

	err = r.Restore(sigUSR2, second)
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "SIGUSR1")

	require.NoError(t, r.Restore(sigUSR1, second))
	assert.False(t, r.Held(sigUSR1))
	assert.Error(t, r.Restore(sigUSR1, second), "a handle restores once")
}

func TestRestoreIsBitForBit(t *testing.T) {
	f := sigtest.New()
	prev := signals.Sigaction{Disposition: signals.DelegateTo(func(int, signals.Info) {}), Restart: false}
	f.Preset(sigUSR2, prev)
	r := signals.NewRegistry(f, zerolog.Nop())

	h, err := r.Capture(sigUSR2)
	require.NoError(t, err)
	require.NoError(t, f.Set(sigUSR2, signals.Sigaction{Disposition: signals.IgnoreAction(), Restart: true}))
	require.NoError(t, r.Restore(sigUSR2, h))

	got := f.Action(sigUSR2)
	assert.True(t, got.Disposition.Equal(prev.Disposition))
	assert.Equal(t, prev.Restart, got.Restart)
}

func TestReleaseForgetsHandle(t *testing.T) {
	f := sigtest.New()
	r := signals.NewRegistry(f, zerolog.Nop())
	h, err := r.Capture(sigUSR1)
	require.NoError(t, err)

	r.Release(h)
	assert.False(t, r.Held(sigUSR1))
	assert.Error(t, r.Restore(sigUSR1, h))
}

func TestCaptureDegradesWithoutIntrospection(t *testing.T) {
	f := sigtest.New()
	f.NoIntrospection = true
	r := signals.NewRegistry(f, zerolog.Nop())

	h, err := r.Capture(sigUSR1)
	require.NoError(t, err)
	assert.True(t, h.Degraded())
	assert.Equal(t, signals.KindDefault, h.Action().Disposition.Kind())
}

func TestCaptureUnsupported(t *testing.T) {
	f := sigtest.New()
	f.Unsupport(sigKILL)
	r := signals.NewRegistry(f, zerolog.Nop())

	_, err := r.Capture(sigKILL)
	var unsupported *signals.UnsupportedSignalError
	assert.True(t, errors.As(err, &unsupported))
	assert.False(t, r.Held(sigKILL))
}
