// Package siglog installs a table of signal-to-log registrations on a
// signals.Bridge. The table has a compact text form suited to flags and
// environment variables:
//
//	SIGUSR1=info+noprevious, HUP=notice+norestart, TERM
//
// Each entry is a signal name or number, an optional level (critical when
// omitted) and optional flags: previous/noprevious, restart/norestart and
// async/queued. Without flags an entry forwards to the previous disposition,
// restarts interrupted calls and leaves the dispatch mode alone.
package siglog

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/srozzo/go-siglog/signals"
	"github.com/srozzo/go-siglog/sink"
)

// earlier is a registration Install replaced.
type earlier struct {
	level  sink.Level
	policy signals.Policy
	held   bool
}

// Install registers every entry of cfg.Table on b, then applies
// cfg.Dispatch. If an entry fails, b is put back the way it was: signals
// this call registered are unregistered, those registered before get their
// earlier level and policy back, and the dispatch mode is restored.
func Install(b *signals.Bridge, cfg Config) error {
	async := b.Dispatcher().Async()
	touched := make(map[int]earlier, len(cfg.Table))
	var order []int

	for _, e := range cfg.Table {
		if _, seen := touched[e.Signo]; !seen {
			level, policy, held := b.Registration(e.Signo)
			touched[e.Signo] = earlier{level: level, policy: policy, held: held}
			order = append(order, e.Signo)
		}
		if err := b.Register(e.Signo, e.Level, e.Policy); err != nil {
			rollback(b, order, touched, async)
			return errors.Wrapf(err, "siglog: install %s", e)
		}
	}
	if cfg.Dispatch != signals.AsyncUnchanged {
		b.Dispatcher().SetAsync(cfg.Dispatch == signals.AsyncEnable)
	}
	return nil
}

func rollback(b *signals.Bridge, order []int, touched map[int]earlier, async bool) {
	for i := len(order) - 1; i >= 0; i-- {
		signo := order[i]
		prev := touched[signo]
		var err error
		switch _, _, now := b.Registration(signo); {
		case prev.held:
			err = b.Register(signo, prev.level, prev.policy)
		case now:
			err = b.Unregister(signo)
		}
		if err != nil {
			log.Warn().Err(err).Str("signal", signals.Name(signo)).Msg("siglog: rollback incomplete")
		}
	}
	b.Dispatcher().SetAsync(async)
}
