package event

import "sync"

// connection records a (transmitter, receiver) pair made through an owner so
// DisconnectAll can release it later.
type connection struct {
	tx  *Transmitter
	key uintptr
	fn  Receiver
}

// Owner holds the transmitters and connections belonging to a single
// instance. Embed (or hold) one Owner per object that declares transmitters;
// each instance constructs its own Owner, which is what keeps sibling
// instances isolated from each other.
type Owner struct {
	mu           sync.Mutex
	transmitters []*Transmitter
	conns        []connection
}

// NewOwner creates an empty owner.
func NewOwner() *Owner {
	return &Owner{}
}

// Transmitter registers and returns a new instance-scoped transmitter.
// Call it once per signal during construction and store the result as a
// plain field.
func (o *Owner) Transmitter(name string) *Transmitter {
	t := NewTransmitter(name)
	o.mu.Lock()
	o.transmitters = append(o.transmitters, t)
	o.mu.Unlock()
	return t
}

// Connect binds r to t and records the pair so DisconnectAll can release it.
func (o *Owner) Connect(t *Transmitter, r Receiver) {
	if t == nil || r == nil {
		return
	}
	t.Connect(r)
	o.mu.Lock()
	o.conns = append(o.conns, connection{tx: t, key: receiverKey(r), fn: r})
	o.mu.Unlock()
}

// Disconnect releases a specific (transmitter, receiver) pair. Disconnecting
// a pair that was never connected is a silent no-op.
func (o *Owner) Disconnect(t *Transmitter, r Receiver) {
	if t == nil || r == nil {
		return
	}
	key := receiverKey(r)
	o.mu.Lock()
	kept := o.conns[:0]
	for _, c := range o.conns {
		if c.tx != t || c.key != key {
			kept = append(kept, c)
		}
	}
	o.conns = kept
	o.mu.Unlock()
	t.Disconnect(r)
}

// DisconnectAll releases every connection made through this owner.
// Subsequent emissions on the owner's transmitters invoke none of the
// receivers that were bound through it.
func (o *Owner) DisconnectAll() {
	o.mu.Lock()
	conns := o.conns
	o.conns = nil
	o.mu.Unlock()
	for _, c := range conns {
		c.tx.Disconnect(c.fn)
	}
}

// ConnectionCount returns the number of live connections made through this
// owner.
func (o *Owner) ConnectionCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.conns)
}
