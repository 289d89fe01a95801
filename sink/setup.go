package sink

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets console output and the global zerolog level. Unknown names
// fall back to info.
func Setup(level string) {
	l, err := ParseLevel(level)
	if err != nil {
		l = Info
	}
	zerolog.SetGlobalLevel(ZerologLevel(l))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat})
}
