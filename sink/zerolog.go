package sink

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SeverityKey carries the full eight-level name on zerolog events, since
// zerolog folds notice into info and critical/alert into error.
const SeverityKey = "severity"

// Zerolog emits records as zerolog events. The context mapping becomes the
// event's fields.
type Zerolog struct {
	logger *zerolog.Logger
}

// NewZerolog returns a sink writing to l. A nil l means the global logger in
// github.com/rs/zerolog/log, resolved on every Emit so later Setup calls apply.
func NewZerolog(l *zerolog.Logger) *Zerolog {
	return &Zerolog{logger: l}
}

// Emit writes one event. It returns false when the level is disabled on the
// logger (or globally), in which case nothing is written.
func (z *Zerolog) Emit(level Level, msg string, ctx map[string]any) bool {
	l := z.logger
	if l == nil {
		l = &log.Logger
	}
	// WithLevel never exits or panics, even for FatalLevel.
	e := l.WithLevel(ZerologLevel(level))
	if e == nil {
		return false
	}
	e.Str(SeverityKey, level.String()).Fields(ctx).Msg(msg)
	return true
}

// ZerologLevel maps a Level onto the closest zerolog level.
func ZerologLevel(l Level) zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Info, Notice:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error, Critical, Alert:
		return zerolog.ErrorLevel
	case Emergency:
		return zerolog.FatalLevel
	}
	return zerolog.NoLevel
}
