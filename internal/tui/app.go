package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openhci/taskrun/internal/event"
	"github.com/openhci/taskrun/internal/experiment"
	"github.com/openhci/taskrun/internal/schedule"
)

// App wraps the Bubbletea program around an experiment
type App struct {
	program *tea.Program
	exp     *experiment.Experiment
	model   Model
}

// New creates a TUI application for the given experiment. Names are the
// task names in run order, used for progress display.
func New(e *experiment.Experiment, names []string) *App {
	return &App{
		exp:   e,
		model: NewModel(e, names),
	}
}

// Run starts the experiment and the terminal UI, returning when the session
// completes or the user quits. Quitting cancels the experiment.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.program = tea.NewProgram(a.model, tea.WithAltScreen())

	// Bridge experiment events into the program's message loop.
	owner := event.NewOwner()
	defer owner.DisconnectAll()
	owner.Connect(a.exp.TaskStarted, func(args ...any) {
		a.program.Send(taskStartedMsg{name: args[0].(string)})
	})
	owner.Connect(a.exp.BlockStarted, func(args ...any) {
		a.program.Send(blockStartedMsg{block: args[0].(*schedule.Block)})
	})
	owner.Connect(a.exp.TrialStarted, func(args ...any) {
		a.program.Send(trialStartedMsg{trial: args[0].(*schedule.Trial)})
	})

	runErr := make(chan error, 1)
	go func() {
		err := a.exp.Run(ctx)
		runErr <- err
		a.program.Send(sessionDoneMsg{err: err})
	}()

	final, uiErr := a.program.Run()

	// The user may have quit before the session finished.
	cancel()
	err := <-runErr

	if uiErr != nil {
		return uiErr
	}
	if m, ok := final.(Model); ok && m.quitting && err == context.Canceled {
		return nil
	}
	return err
}
