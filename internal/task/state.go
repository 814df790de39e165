package task

// State represents the lifecycle state of a task.
type State int

const (
	// StateUninitialized indicates the task has been constructed but not
	// prepared or run.
	StateUninitialized State = iota

	// StatePrepared indicates collaborator handles have been attached and
	// the task is ready to run.
	StatePrepared

	// StateRunning indicates a trial is active.
	StateRunning

	// StateAdvanceWait indicates the task is waiting for an external
	// trigger (key press, timer, or programmatic call) to advance.
	StateAdvanceWait

	// StateFinished indicates the schedule is exhausted. Terminal.
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePrepared:
		return "prepared"
	case StateRunning:
		return "running"
	case StateAdvanceWait:
		return "advance-wait"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
