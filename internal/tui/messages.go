package tui

import "github.com/openhci/taskrun/internal/schedule"

// taskStartedMsg signals that a new task began running
type taskStartedMsg struct {
	name string
}

// blockStartedMsg signals that a new block became current
type blockStartedMsg struct {
	block *schedule.Block
}

// trialStartedMsg signals that a trial began
type trialStartedMsg struct {
	trial *schedule.Trial
}

// sessionDoneMsg signals that the experiment's Run returned
type sessionDoneMsg struct {
	err error
}
