package sink

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Level is the severity of a record. The eight levels follow syslog(3).
type Level int8

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
)

var levelNames = [...]string{"debug", "info", "notice", "warning", "error", "critical", "alert", "emergency"}

// ErrUnknownLevel is returned by ParseLevel for names it does not recognise.
var ErrUnknownLevel = errors.New("sink: unknown level")

// Valid reports whether l is one of the recognised levels.
func (l Level) Valid() bool { return l >= Debug && l <= Emergency }

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", int8(l))
	}
	return levelNames[l]
}

// ParseLevel maps a case-insensitive level name (or its common short form) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice":
		return Notice, nil
	case "warn", "warning":
		return Warning, nil
	case "err", "error":
		return Error, nil
	case "crit", "critical":
		return Critical, nil
	case "alert":
		return Alert, nil
	case "emerg", "emergency":
		return Emergency, nil
	}
	return Debug, errors.Wrapf(ErrUnknownLevel, "%q", s)
}
