package task

import (
	"sync"
	"time"

	"github.com/openhci/taskrun/internal/event"
	"github.com/openhci/taskrun/internal/logging"
	"github.com/openhci/taskrun/internal/schedule"
	"github.com/openhci/taskrun/internal/timing"
)

// Task sequences one experiment task through its block/trial schedule.
//
// All state transitions happen under the task's lock; lifecycle emissions
// are flushed after the lock is released, so receivers may freely read task
// state (Block, Trial, State) but must not advance the task from inside an
// emission.
type Task struct {
	// Finished emits (with no arguments) exactly once, when the schedule
	// is exhausted.
	Finished *event.Transmitter

	// BlockStarted emits the current *schedule.Block whenever a new block
	// becomes current.
	BlockStarted *event.Transmitter

	// TrialStarted emits the current *schedule.Trial whenever a trial
	// begins.
	TrialStarted *event.Transmitter

	owner *event.Owner
	log   *logging.Logger

	advanceTrialKey string
	advanceBlockKey string

	trialTimer *timing.Timer

	mu       sync.Mutex
	design   *schedule.Design
	iter     *schedule.Iterator
	state    State
	block    *schedule.Block
	trial    *schedule.Trial
	queued   []emission
	released bool

	view    any
	input   any
	storage any
}

// emission is a lifecycle event recorded under the lock and dispatched
// after it is released.
type emission struct {
	tx   *event.Transmitter
	args []any
}

// Option configures a Task.
type Option func(*Task)

// WithAdvanceTrialKey sets the key that advances to the next trial.
// KeyNone disables key-driven trial advancement (programmatic or
// timer-driven only). The default is KeyReturn.
func WithAdvanceTrialKey(key string) Option {
	return func(t *Task) { t.advanceTrialKey = key }
}

// WithAdvanceBlockKey sets the key that begins the next block after the
// previous one's trials are exhausted. KeyNone selects automatic block
// advancement: block boundaries are crossed without waiting for input.
// The default is KeyReturn.
func WithAdvanceBlockKey(key string) Option {
	return func(t *Task) { t.advanceBlockKey = key }
}

// WithTrialTimeout attaches a countdown timer that advances to the next
// trial when a trial has been active for d. The countdown restarts on every
// trial start and is cancelled when the task finishes.
func WithTrialTimeout(d time.Duration) Option {
	return func(t *Task) { t.trialTimer = timing.NewTimer(d) }
}

// WithLogger sets the structured logger for lifecycle transitions. The
// default discards all output.
func WithLogger(log *logging.Logger) Option {
	return func(t *Task) { t.log = log }
}

// New creates an uninitialized task holding an empty schedule. Populate the
// schedule with Design or AddBlock before Run.
func New(opts ...Option) *Task {
	owner := event.NewOwner()
	d := schedule.NewDesign()
	t := &Task{
		Finished:        owner.Transmitter("finished"),
		BlockStarted:    owner.Transmitter("block_started"),
		TrialStarted:    owner.Transmitter("trial_started"),
		owner:           owner,
		log:             logging.NopLogger(),
		advanceTrialKey: KeyReturn,
		advanceBlockKey: KeyReturn,
		design:          d,
		iter:            schedule.NewIterator(d),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.trialTimer != nil {
		owner.Connect(t.trialTimer.Timeout, func(args ...any) { t.NextTrial() })
	}
	return t
}

// Design replaces the task's schedule. It has no effect once the task is
// running.
func (t *Task) Design(d *schedule.Design) {
	t.mu.Lock()
	defer t.flush()

	if t.state >= StateRunning {
		t.log.Warn("design ignored: task already running", "state", t.state.String())
		return
	}
	if d == nil {
		d = schedule.NewDesign()
	}
	t.design = d
	t.iter = schedule.NewIterator(d)
}

// AddBlock appends an empty block to the schedule for incremental
// construction. It returns nil once the task is running.
func (t *Task) AddBlock() *schedule.Block {
	t.mu.Lock()
	defer t.flush()

	if t.state >= StateRunning {
		t.log.Warn("block ignored: task already running", "state", t.state.String())
		return nil
	}
	return t.design.AddBlock()
}

// PrepareView attaches the rendering surface handle. The task does not
// inspect the handle; it only holds it for collaborators.
func (t *Task) PrepareView(handle any) {
	t.mu.Lock()
	defer t.flush()
	t.view = handle
	t.markPrepared()
}

// PrepareInputStream attaches the input-stream handle.
func (t *Task) PrepareInputStream(handle any) {
	t.mu.Lock()
	defer t.flush()
	t.input = handle
	t.markPrepared()
}

// PrepareStorage attaches the storage handle.
func (t *Task) PrepareStorage(handle any) {
	t.mu.Lock()
	defer t.flush()
	t.storage = handle
	t.markPrepared()
}

// View returns the rendering surface handle attached via PrepareView.
func (t *Task) View() any { t.mu.Lock(); defer t.mu.Unlock(); return t.view }

// InputStream returns the handle attached via PrepareInputStream.
func (t *Task) InputStream() any { t.mu.Lock(); defer t.mu.Unlock(); return t.input }

// Storage returns the handle attached via PrepareStorage.
func (t *Task) Storage() any { t.mu.Lock(); defer t.mu.Unlock(); return t.storage }

// Run transitions the task to running: the first block becomes current and
// the task waits for an external trigger to begin its first trial. No
// current trial exists until the first advance.
func (t *Task) Run() {
	t.mu.Lock()
	defer t.flush()

	if t.state >= StateRunning {
		t.log.Warn("run ignored", "state", t.state.String())
		return
	}

	b := t.iter.NextBlock()
	t.block = b
	t.trial = nil
	t.state = StateAdvanceWait
	t.log.Info("task running", "blocks", len(t.design.Blocks))
	t.emit(t.BlockStarted, b)
}

// KeyPress feeds a key code to the controller. A key matching the
// advance-trial key advances to the next trial; at a block boundary the
// advance-block key (or the trial key) begins the next block's first trial.
// Key presses are ignored before Run and after the task finishes.
func (t *Task) KeyPress(key string) {
	t.mu.Lock()
	defer t.flush()

	if key == KeyNone || t.state < StateRunning || t.state == StateFinished {
		return
	}

	atBlockStart := t.trial == nil
	if atBlockStart && (key == t.advanceBlockKey || key == t.advanceTrialKey) {
		t.advanceTrial()
		return
	}
	if key == t.advanceTrialKey {
		t.advanceTrial()
	}
}

// NextTrial advances to the next trial programmatically, with the same
// transition logic as a matching key press: exhausting the current block
// falls through to the next block, and exhausting the schedule finishes
// the task.
func (t *Task) NextTrial() {
	t.mu.Lock()
	defer t.flush()

	if t.state < StateRunning || t.state == StateFinished {
		return
	}
	t.advanceTrial()
}

// NextBlock skips the remainder of the current block and advances to the
// next one. Exhausting the schedule finishes the task.
func (t *Task) NextBlock() {
	t.mu.Lock()
	defer t.flush()

	if t.state < StateRunning || t.state == StateFinished {
		return
	}
	t.advanceBlock()
}

// State returns the task's lifecycle state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Block returns the current block, or nil before Run.
func (t *Task) Block() *schedule.Block {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.block
}

// Trial returns the current trial, or nil before the first advance of the
// current block and after the task finishes.
func (t *Task) Trial() *schedule.Trial {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trial
}

// SetAdvanceBlockKey changes the block-advance key. KeyNone selects
// automatic block advancement.
func (t *Task) SetAdvanceBlockKey(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.advanceBlockKey = key
}

// SetAdvanceTrialKey changes the trial-advance key.
func (t *Task) SetAdvanceTrialKey(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.advanceTrialKey = key
}

// advanceTrial moves to the next trial of the current block, falling
// through to block advancement on exhaustion. Lock held.
func (t *Task) advanceTrial() {
	if t.state == StateFinished {
		return
	}
	tr := t.iter.NextTrial()
	if tr == nil {
		t.advanceBlock()
		return
	}
	t.trial = tr
	t.state = StateRunning
	t.log.Debug("trial started", "block", tr.Block, "trial", tr.Index)
	if t.trialTimer != nil {
		t.trialTimer.Start()
	}
	t.emit(t.TrialStarted, tr)
}

// advanceBlock moves to the next block, finishing the task on exhaustion.
// In automatic mode the new block's first trial begins immediately;
// otherwise the task waits for the advance-block key. Lock held.
func (t *Task) advanceBlock() {
	if t.state == StateFinished {
		return
	}
	b := t.iter.NextBlock()
	if b == nil {
		t.finish()
		return
	}
	t.block = b
	t.trial = nil
	t.log.Debug("block started", "block", b.Index, "trials", len(b.Trials))
	t.emit(t.BlockStarted, b)
	if t.advanceBlockKey == KeyNone {
		t.advanceTrial()
		return
	}
	t.state = StateAdvanceWait
}

// finish transitions to the terminal state and emits Finished exactly once.
// Lock held.
func (t *Task) finish() {
	t.state = StateFinished
	t.trial = nil
	if t.trialTimer != nil {
		t.trialTimer.Stop()
	}
	t.log.Info("task finished")
	t.emit(t.Finished)
}

// emit queues a lifecycle emission for dispatch after the lock is released.
// Lock held.
func (t *Task) emit(tx *event.Transmitter, args ...any) {
	t.queued = append(t.queued, emission{tx: tx, args: args})
}

// flush releases the lock, dispatches queued emissions in order, and tears
// down the owner's connections once after the task finishes.
//
// Emissions from a single advance stay ordered, but dispatch happens after
// the lock is released: two advances racing from different goroutines (a
// trial timer against a key press) may interleave their emissions. Drivers
// that need strict cross-advance ordering must advance from one goroutine.
func (t *Task) flush() {
	q := t.queued
	t.queued = nil
	release := t.state == StateFinished && !t.released
	if release {
		t.released = true
	}
	t.mu.Unlock()

	for _, e := range q {
		e.tx.Emit(e.args...)
	}
	if release {
		t.owner.DisconnectAll()
	}
}

// markPrepared moves an uninitialized task to prepared. Lock held.
func (t *Task) markPrepared() {
	if t.state == StateUninitialized {
		t.state = StatePrepared
	}
}
