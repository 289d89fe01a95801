package signals

// Keys of the context mapping emitted with every record. KeySigno is always
// present; the others only when the facade supplied them. The system facade
// only knows the signal number, since os/signal carries no siginfo.
const (
	KeySigno = "signo"
	KeyPID   = "pid"
	KeyUID   = "uid"
	KeyCode  = "code"
	KeyErrno = "errno"
)

// Field marks which optional Info fields are set.
type Field uint8

const (
	HasPID Field = 1 << iota
	HasUID
	HasCode
	HasErrno
)

// Info is the metadata of one delivery.
type Info struct {
	Signo  int
	PID    int // sending process
	UID    int // real user id of the sender
	Code   int // si_code
	Errno  int
	Fields Field

	forwarded bool
}

// Forwarded reports that the delivery reached this handler as some other
// handler's previous disposition rather than straight from the facade.
func (i Info) Forwarded() bool { return i.forwarded }

// Context renders i as the mapping handed to the sink. Absent fields are
// omitted rather than zero-filled.
func (i Info) Context() map[string]any {
	ctx := map[string]any{KeySigno: i.Signo}
	if i.Fields&HasPID != 0 {
		ctx[KeyPID] = i.PID
	}
	if i.Fields&HasUID != 0 {
		ctx[KeyUID] = i.UID
	}
	if i.Fields&HasCode != 0 {
		ctx[KeyCode] = i.Code
	}
	if i.Fields&HasErrno != 0 {
		ctx[KeyErrno] = i.Errno
	}
	return ctx
}
