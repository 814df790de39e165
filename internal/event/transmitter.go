package event

import (
	"reflect"
	"sync"
)

// Receiver is a callable bound to a transmitter. The arguments passed to
// Emit are forwarded to every bound receiver unchanged.
type Receiver func(args ...any)

// binding pairs a receiver with its identity key so Disconnect can match
// a previously connected function value.
type binding struct {
	key uintptr
	fn  Receiver
}

// Transmitter is a named emission point. Each Transmitter value has its own
// dispatch table; construct one per owner instance, never share one across
// instances of the same type.
type Transmitter struct {
	name string

	mu       sync.Mutex
	bindings []binding
}

// NewTransmitter creates a transmitter with the given name. The name is
// informational (logging, debugging); dispatch is keyed on the transmitter
// value itself.
func NewTransmitter(name string) *Transmitter {
	return &Transmitter{name: name}
}

// Name returns the name the transmitter was registered under.
func (t *Transmitter) Name() string { return t.name }

// Connect registers a receiver to be invoked on every emission. Connecting
// the same receiver twice is additive: it will fire twice per emission.
func (t *Transmitter) Connect(r Receiver) {
	if r == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings = append(t.bindings, binding{key: receiverKey(r), fn: r})
}

// Disconnect removes every registration of the given receiver. Disconnecting
// a receiver that was never connected is a silent no-op.
func (t *Transmitter) Disconnect(r Receiver) {
	if r == nil {
		return
	}
	key := receiverKey(r)
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.bindings[:0]
	for _, b := range t.bindings {
		if b.key != key {
			kept = append(kept, b)
		}
	}
	t.bindings = kept
}

// Emit synchronously invokes every receiver currently registered on this
// transmitter, in registration order, passing args through. Emit returns
// only after the last receiver has run. Panics raised by receivers are not
// recovered.
func (t *Transmitter) Emit(args ...any) {
	t.mu.Lock()
	snapshot := make([]binding, len(t.bindings))
	copy(snapshot, t.bindings)
	t.mu.Unlock()

	for _, b := range snapshot {
		b.fn(args...)
	}
}

// ReceiverCount returns the number of active registrations, counting
// duplicates once per Connect call.
func (t *Transmitter) ReceiverCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.bindings)
}

// receiverKey returns an identity key for a receiver function value.
// Closures get distinct keys per value; method values of the same method
// share a key, so prefer owner-scoped transmitters when binding methods of
// sibling instances.
func receiverKey(r Receiver) uintptr {
	return reflect.ValueOf(r).Pointer()
}
