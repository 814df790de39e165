package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/openhci/taskrun/internal/event"
	"github.com/openhci/taskrun/internal/logging"
	"github.com/openhci/taskrun/internal/schedule"
	"github.com/openhci/taskrun/internal/task"
)

// TrialSink receives trial records as they begin. Storage handles that
// implement it get every trial of every task; handles that do not are
// passed through to tasks untouched.
type TrialSink interface {
	WriteTrial(taskName string, tr *schedule.Trial) error
}

// entry pairs a task with its name for logging and storage.
type entry struct {
	name string
	task *task.Task
}

// Experiment runs tasks sequentially for one subject.
type Experiment struct {
	// TaskStarted emits the task name when a task begins running.
	TaskStarted *event.Transmitter

	// BlockStarted re-emits the current task's *schedule.Block whenever a
	// new block becomes current, so observers need not track task changes.
	BlockStarted *event.Transmitter

	// TrialStarted re-emits the current task's *schedule.Trial whenever a
	// trial begins.
	TrialStarted *event.Transmitter

	// Completed emits (with no arguments) when the last task finishes.
	Completed *event.Transmitter

	owner *event.Owner
	log   *logging.Logger

	subject string
	view    any
	input   any
	storage any

	mu      sync.Mutex
	tasks   []entry
	current *task.Task
}

// Option configures an Experiment.
type Option func(*Experiment)

// WithView sets the rendering surface handle passed to every task.
func WithView(handle any) Option {
	return func(e *Experiment) { e.view = handle }
}

// WithInputStream sets the input-stream handle passed to every task.
func WithInputStream(handle any) Option {
	return func(e *Experiment) { e.input = handle }
}

// WithStorage sets the storage handle passed to every task. A handle
// implementing [TrialSink] additionally receives every trial record.
func WithStorage(handle any) Option {
	return func(e *Experiment) { e.storage = handle }
}

// WithLogger sets the structured logger. The default discards all output.
func WithLogger(log *logging.Logger) Option {
	return func(e *Experiment) { e.log = log }
}

// New creates an experiment for the given subject.
func New(subject string, opts ...Option) *Experiment {
	owner := event.NewOwner()
	e := &Experiment{
		TaskStarted:  owner.Transmitter("task_started"),
		BlockStarted: owner.Transmitter("block_started"),
		TrialStarted: owner.Transmitter("trial_started"),
		Completed:    owner.Transmitter("completed"),
		owner:        owner,
		log:          logging.NopLogger(),
		subject:      subject,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithSession(subject)
	return e
}

// Subject returns the subject identifier the experiment was created with.
func (e *Experiment) Subject() string { return e.subject }

// AddTask appends a named task to the session. Tasks run in the order they
// were added.
func (e *Experiment) AddTask(name string, t *task.Task) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, entry{name: name, task: t})
}

// KeyPress forwards a key code to the currently running task. Presses
// between tasks are dropped.
func (e *Experiment) KeyPress(key string) {
	e.mu.Lock()
	t := e.current
	e.mu.Unlock()
	if t != nil {
		t.KeyPress(key)
	}
}

// CurrentTask returns the task currently running, or nil between tasks.
func (e *Experiment) CurrentTask() *task.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Run executes the session: each task is prepared with the shared
// collaborator handles and run to completion before the next begins. Run
// returns when the last task finishes, or early with the context's error.
// All connections the experiment made are released on return.
func (e *Experiment) Run(ctx context.Context) error {
	defer e.owner.DisconnectAll()

	e.mu.Lock()
	tasks := make([]entry, len(e.tasks))
	copy(tasks, e.tasks)
	e.mu.Unlock()

	if len(tasks) == 0 {
		return fmt.Errorf("experiment has no tasks")
	}

	sink, hasSink := e.storage.(TrialSink)

	for _, ent := range tasks {
		t := ent.task
		log := e.log.WithTask(ent.name)

		t.PrepareView(e.view)
		t.PrepareInputStream(e.input)
		t.PrepareStorage(e.storage)

		done := make(chan struct{})
		e.owner.Connect(t.Finished, func(args ...any) { close(done) })
		e.owner.Connect(t.BlockStarted, func(args ...any) { e.BlockStarted.Emit(args...) })
		e.owner.Connect(t.TrialStarted, func(args ...any) { e.TrialStarted.Emit(args...) })
		if hasSink {
			name := ent.name
			e.owner.Connect(t.TrialStarted, func(args ...any) {
				tr := args[0].(*schedule.Trial)
				if err := sink.WriteTrial(name, tr); err != nil {
					log.Error("failed to write trial", "error", err.Error())
				}
			})
		}

		e.mu.Lock()
		e.current = t
		e.mu.Unlock()

		log.Info("task started")
		e.TaskStarted.Emit(ent.name)
		t.Run()

		select {
		case <-done:
			log.Info("task completed")
		case <-ctx.Done():
			e.mu.Lock()
			e.current = nil
			e.mu.Unlock()
			log.Warn("session interrupted", "error", ctx.Err().Error())
			return ctx.Err()
		}

		e.mu.Lock()
		e.current = nil
		e.mu.Unlock()
	}

	e.log.Info("session completed", "tasks", len(tasks))
	e.Completed.Emit()
	return nil
}
