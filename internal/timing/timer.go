package timing

import (
	"sync"
	"time"

	"github.com/openhci/taskrun/internal/event"
)

// Timer emits a timeout once a wall-clock duration has elapsed after Start.
// Starting while already running restarts the countdown; Stop cancels a
// pending countdown so that cycle never emits.
//
// The timeout emission runs on the runtime timer goroutine. Start, Stop,
// and the expiry all contend for the same lock: a countdown stopped before
// the expiry's commit point can never emit, and an expiry that has already
// committed belongs to a cycle that elapsed before Stop. Receivers may call
// Start or Stop from inside the emission, e.g. to rearm the timer.
type Timer struct {
	// Timeout emits (with no arguments) when the countdown elapses.
	Timeout *event.Transmitter

	duration time.Duration

	mu      sync.Mutex
	pending *time.Timer
	cycle   uint64
}

// NewTimer creates a countdown timer with the given duration.
func NewTimer(d time.Duration) *Timer {
	return &Timer{
		Timeout:  event.NewTransmitter("timeout"),
		duration: d,
	}
}

// Start begins (or restarts) the countdown. Left undisturbed, the timeout
// fires after the configured duration.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cycle++
	cycle := t.cycle
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(t.duration, func() { t.fire(cycle) })
}

// Stop cancels a pending countdown. Bumping the cycle under the lock
// invalidates any expiry that has not yet committed, so a stopped cycle
// never emits.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cycle++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// Running reports whether a countdown is pending.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Duration returns the configured countdown duration.
func (t *Timer) Duration() time.Duration { return t.duration }

// fire emits the timeout for a specific start cycle. The cycle check under
// the lock is the commit point that arbitrates against Stop and restarts.
func (t *Timer) fire(cycle uint64) {
	t.mu.Lock()
	if cycle != t.cycle {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	t.mu.Unlock()

	t.Timeout.Emit()
}
