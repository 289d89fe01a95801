package signals

// Async is a tri-state request for the process-wide dispatch mode.
type Async int8

const (
	AsyncUnchanged Async = iota
	AsyncEnable
	AsyncDisable
)

func (a Async) String() string {
	switch a {
	case AsyncEnable:
		return "async"
	case AsyncDisable:
		return "queued"
	}
	return "unchanged"
}

// AsyncFrom maps an optional bool: nil leaves the mode unchanged.
func AsyncFrom(enabled *bool) Async {
	switch {
	case enabled == nil:
		return AsyncUnchanged
	case *enabled:
		return AsyncEnable
	default:
		return AsyncDisable
	}
}

// Policy is how a registration behaves beyond logging.
type Policy struct {
	// CallPrevious forwards each delivery, after logging, to the disposition
	// that was installed before the first registration of the signal.
	CallPrevious bool
	// RestartSyscalls keeps blocking calls running across a delivery.
	// When false, contexts from Bridge.Interruptible are cancelled.
	RestartSyscalls bool
	// Async optionally switches the dispatcher mode on registration.
	Async Async
}

// DefaultPolicy forwards to the previous disposition, restarts interrupted
// calls and switches to async dispatch.
func DefaultPolicy() Policy {
	return Policy{
		CallPrevious:    true,
		RestartSyscalls: true,
		Async:           AsyncEnable,
	}
}
