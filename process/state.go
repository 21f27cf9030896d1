package process

import "fmt"

// State is the lifecycle state of an Output.
type State int

const (
	// StateNotStarted is the state before the launch attempt completes.
	StateNotStarted State = iota
	// StateRunning indicates the process was started and has not exited.
	StateRunning
	// StateExited indicates the process terminated and its exit code is fixed.
	StateExited
	// StateFailedToStart indicates the launch attempt failed; no process exists.
	StateFailedToStart
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateFailedToStart:
		return "failed_to_start"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// IsTerminal reports whether no further transition can happen.
func (s State) IsTerminal() bool {
	return s == StateExited || s == StateFailedToStart
}
