//go:build unix

package siglog

import (
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srozzo/go-siglog/signals"
	"github.com/srozzo/go-siglog/signals/sigtest"
	"github.com/srozzo/go-siglog/sink"
)

func TestParseTable(t *testing.T) {
	entries, err := ParseTable("SIGUSR1=info+noprevious, hup=notice+norestart+queued\tTERM")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{
		Signo:  int(syscall.SIGUSR1),
		Level:  sink.Info,
		Policy: signals.Policy{CallPrevious: false, RestartSyscalls: true},
	}, entries[0])
	assert.Equal(t, Entry{
		Signo:  int(syscall.SIGHUP),
		Level:  sink.Notice,
		Policy: signals.Policy{CallPrevious: true, RestartSyscalls: false, Async: signals.AsyncDisable},
	}, entries[1])
	assert.Equal(t, int(syscall.SIGTERM), entries[2].Signo)
	assert.Equal(t, sink.Critical, entries[2].Level)
	assert.Equal(t, "SIGTERM=critical", entries[2].String())
}

func TestParseTableErrors(t *testing.T) {
	for _, in := range []string{
		"SIGNOPE",
		"SIGUSR1=loud",
		"SIGUSR1+sometimes",
		"USR1,SIGUSR1",
	} {
		_, err := ParseTable(in)
		assert.Error(t, err, in)
	}

	entries, err := ParseTable(" , ")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseDispatch(t *testing.T) {
	for in, want := range map[string]signals.Async{
		"":          signals.AsyncUnchanged,
		"unchanged": signals.AsyncUnchanged,
		"ON":        signals.AsyncEnable,
		"async":     signals.AsyncEnable,
		"queued":    signals.AsyncDisable,
		"false":     signals.AsyncDisable,
	} {
		got, err := ParseDispatch(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDispatch("sometimes")
	assert.Error(t, err)
}

func TestInstall(t *testing.T) {
	fake := sigtest.New()
	var rec sink.Recorder
	d := signals.NewDispatcher(true)
	b := signals.New(&rec, signals.WithFacade(fake), signals.WithDispatcher(d), signals.WithLogger(zerolog.Nop()))
	defer b.Close()

	table, err := ParseTable("USR1=info+noprevious,USR2=warning")
	require.NoError(t, err)
	require.NoError(t, Install(b, Config{Table: table, Dispatch: signals.AsyncDisable}))

	assert.Equal(t, []int{int(syscall.SIGUSR1), int(syscall.SIGUSR2)}, b.Registered())
	assert.False(t, d.Async())

	fake.Signal(int(syscall.SIGUSR2))
	d.Poll()
	assert.True(t, rec.Contains(sink.Warning, "SIGUSR2"))
}

func TestInstallRollsBack(t *testing.T) {
	fake := sigtest.New()
	fake.Unsupport(int(syscall.SIGUSR2))
	b := signals.New(&sink.Recorder{}, signals.WithFacade(fake), signals.WithDispatcher(signals.NewDispatcher(true)), signals.WithLogger(zerolog.Nop()))
	defer b.Close()

	table, err := ParseTable("USR1=info,USR2=info")
	require.NoError(t, err)
	err = Install(b, Config{Table: table})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIGUSR2")
	assert.Empty(t, b.Registered())
	assert.Equal(t, signals.KindDefault, fake.Action(int(syscall.SIGUSR1)).Disposition.Kind())
}

func TestInstallRollbackKeepsEarlierRegistrations(t *testing.T) {
	fake := sigtest.New()
	fake.Unsupport(int(syscall.SIGHUP))
	var rec sink.Recorder
	d := signals.NewDispatcher(true)
	b := signals.New(&rec, signals.WithFacade(fake), signals.WithDispatcher(d), signals.WithLogger(zerolog.Nop()))
	defer b.Close()

	before := signals.Policy{RestartSyscalls: true}
	require.NoError(t, b.Register(int(syscall.SIGUSR1), sink.Info, before))

	table, err := ParseTable("USR1=warning+queued, HUP")
	require.NoError(t, err)
	require.Error(t, Install(b, Config{Table: table}))

	assert.Equal(t, []int{int(syscall.SIGUSR1)}, b.Registered())
	level, policy, ok := b.Registration(int(syscall.SIGUSR1))
	require.True(t, ok)
	assert.Equal(t, sink.Info, level)
	assert.Equal(t, before, policy)
	assert.True(t, d.Async())

	fake.Signal(int(syscall.SIGUSR1))
	assert.True(t, rec.Contains(sink.Info, "SIGUSR1"))
	assert.False(t, rec.Contains(sink.Warning, "SIGUSR1"))
}
