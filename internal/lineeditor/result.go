package lineeditor

import "errors"

// ErrScreenClosed is returned by ReadLine when the event source stops
// delivering events.
var ErrScreenClosed = errors.New("screen closed")

// Status tells how a ReadLine session ended.
type Status int

const (
	// Success means the line was submitted; Content holds it.
	Success Status = iota
	Interrupted
	EndTerminalSession
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Interrupted:
		return "interrupted"
	case EndTerminalSession:
		return "end-of-session"
	default:
		return "unknown"
	}
}

type Result struct {
	Status  Status
	Content string
}

// status is what applying one semantic event did to the session.
type status int

const (
	statusGeneral status = iota
	statusEdit
	statusMovement
	statusSelection
	// statusAutoComplete and statusInapplicable end the iteration without
	// a render pass.
	statusAutoComplete
	statusInapplicable
	statusExit
)
