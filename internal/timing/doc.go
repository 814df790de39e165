// Package timing provides the primitives that drive automatic task
// advancement: a tick counter that emits after a configurable number of
// increments, and a wall-clock countdown that emits after a duration
// elapses. Both expose their expiry as a Timeout transmitter on the event
// bus, so consumers subscribe the same way they do to task lifecycle
// events.
package timing
