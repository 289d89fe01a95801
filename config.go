package siglog

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/srozzo/go-siglog/signals"
	"github.com/srozzo/go-siglog/sink"
)

// Entry is one registration of the table.
type Entry struct {
	Signo  int
	Level  sink.Level
	Policy signals.Policy
}

func (e Entry) String() string {
	return fmt.Sprintf("%s=%s", signals.Name(e.Signo), e.Level)
}

// Config is everything Install needs.
type Config struct {
	Table []Entry
	// Dispatch optionally switches the bridge's dispatcher after the table
	// is installed.
	Dispatch signals.Async
}

// DefaultLevel is used for entries that name no level.
const DefaultLevel = sink.Critical

// ParseTable parses the text form described in the package documentation.
// Entries are separated by commas or whitespace.
func ParseTable(s string) ([]Entry, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	entries := make([]Entry, 0, len(fields))
	seen := make(map[int]bool, len(fields))
	for _, f := range fields {
		e, err := parseEntry(f)
		if err != nil {
			return nil, err
		}
		if seen[e.Signo] {
			return nil, errors.Errorf("siglog: %s listed twice", signals.Name(e.Signo))
		}
		seen[e.Signo] = true
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(s string) (Entry, error) {
	parts := strings.Split(s, "+")
	name, level, hasLevel := strings.Cut(parts[0], "=")

	signo, err := signals.Number(name)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "siglog: entry %q", s)
	}
	e := Entry{
		Signo:  signo,
		Level:  DefaultLevel,
		Policy: signals.Policy{CallPrevious: true, RestartSyscalls: true},
	}
	if hasLevel {
		if e.Level, err = sink.ParseLevel(level); err != nil {
			return Entry{}, errors.Wrapf(err, "siglog: entry %q", s)
		}
	}
	for _, flag := range parts[1:] {
		switch strings.ToLower(flag) {
		case "previous":
			e.Policy.CallPrevious = true
		case "noprevious":
			e.Policy.CallPrevious = false
		case "restart":
			e.Policy.RestartSyscalls = true
		case "norestart":
			e.Policy.RestartSyscalls = false
		case "async":
			e.Policy.Async = signals.AsyncEnable
		case "queued":
			e.Policy.Async = signals.AsyncDisable
		default:
			return Entry{}, errors.Errorf("siglog: entry %q: unknown flag %q", s, flag)
		}
	}
	return e, nil
}

// ParseDispatch maps "async"/"on"/"true" and "queued"/"off"/"false" to a
// dispatch request; the empty string and "unchanged" leave the mode alone.
func ParseDispatch(s string) (signals.Async, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unchanged":
		return signals.AsyncUnchanged, nil
	case "async", "on", "true":
		return signals.AsyncEnable, nil
	case "queued", "off", "false":
		return signals.AsyncDisable, nil
	}
	return signals.AsyncUnchanged, errors.Errorf("siglog: unknown dispatch mode %q", s)
}
