package timing

import (
	"fmt"

	"github.com/openhci/taskrun/internal/event"
)

// Counter emits a timeout after a fixed number of increments. It is driven
// by an external tick source (commonly an input-stream update) and is the
// tick-based counterpart to [Timer].
//
// The threshold may be fractional: the timeout fires on the increment that
// reaches the final (possibly partial) tick, so a threshold of 3.5 expires
// on the third increment.
type Counter struct {
	// Timeout emits (with no arguments) when the count reaches the
	// threshold.
	Timeout *event.Transmitter

	threshold      float64
	resetOnTimeout bool

	count   int
	expired bool
}

// CounterOption configures a Counter.
type CounterOption func(*Counter)

// WithoutResetOnTimeout keeps the count at the threshold after the timeout
// fires, until an explicit Reset. The default is to reset to zero
// automatically.
func WithoutResetOnTimeout() CounterOption {
	return func(c *Counter) { c.resetOnTimeout = false }
}

// NewCounter creates a counter that times out after threshold increments.
// A non-positive threshold is an invalid-argument error.
func NewCounter(threshold float64, opts ...CounterOption) (*Counter, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("counter threshold must be positive, got %v", threshold)
	}
	c := &Counter{
		Timeout:        event.NewTransmitter("timeout"),
		threshold:      threshold,
		resetOnTimeout: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Increment advances the count by one. When the count reaches or exceeds
// the threshold, the timeout fires exactly once and the count resets to
// zero, unless configured with WithoutResetOnTimeout, in which case the
// count holds at its expiry value until Reset.
func (c *Counter) Increment() {
	if c.expired {
		return
	}
	c.count++
	if float64(c.count) > c.threshold-1 {
		if c.resetOnTimeout {
			c.count = 0
		} else {
			c.expired = true
		}
		c.Timeout.Emit()
	}
}

// Reset forces the count back to zero without emitting.
func (c *Counter) Reset() {
	c.count = 0
	c.expired = false
}

// Count returns the current count.
func (c *Counter) Count() int { return c.count }

// Progress returns the fraction of the threshold reached so far.
func (c *Counter) Progress() float64 {
	return float64(c.count) / c.threshold
}

// Threshold returns the configured threshold.
func (c *Counter) Threshold() float64 { return c.threshold }
