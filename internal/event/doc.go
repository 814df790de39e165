// Package event provides the transmitter/receiver primitive that decouples
// the task controller, timing primitives, and their observers.
//
// A Transmitter is a named emission point owned by exactly one owner
// instance. Receivers bound to a transmitter are invoked synchronously and
// in registration order whenever the transmitter emits. Two owners of the
// same-named transmitter share nothing: binding a receiver through one
// instance never causes it to fire when a sibling instance emits.
//
// Transmitters are created by an explicit registration call during owner
// construction, either directly via [NewTransmitter] or through
// [Owner.Transmitter], which additionally lets the owner release every
// connection it made in one call ([Owner.DisconnectAll]).
//
// # Duplicate connections
//
// Connect is additive: connecting the same receiver to the same transmitter
// twice makes it fire twice per emission. Disconnect removes every
// registration of that receiver.
//
// # Receiver failures
//
// Emit does not recover panics raised by receivers; a failing receiver
// propagates to the emitter's caller unmodified.
package event
