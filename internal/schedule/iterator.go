package schedule

// Iterator walks a design block by block, trial by trial, strictly in
// schedule order. NextBlock and NextTrial return nil as the termination
// sentinel once their level is exhausted; the sentinel persists on repeated
// calls.
//
// Callers always get a starting point: an empty or absent design yields one
// placeholder block holding one attribute-less trial, and NextTrial before
// any NextBlock draws from the same placeholder. The first call at either
// level is therefore never the sentinel.
//
// The iterator captures the design at construction. It never mutates the
// design, and callers must not mutate it once iteration has begun.
type Iterator struct {
	design *Design

	blockIdx    int
	current     *Block
	trialIdx    int
	servedEmpty bool
}

// placeholderBlock builds the fallback block served when no authored block
// is available: a single block containing one empty trial.
func placeholderBlock() *Block {
	b := &Block{}
	b.AddTrial(nil)
	return b
}

// NewIterator creates an iterator over d. A nil design is valid.
func NewIterator(d *Design) *Iterator {
	return &Iterator{
		design:   d,
		blockIdx: -1,
		// Implicit fallback for NextTrial called before any NextBlock.
		current:  placeholderBlock(),
		trialIdx: -1,
	}
}

// NextBlock returns the next block in the design, or nil when the design is
// exhausted. An empty or absent design yields one placeholder block with a
// single empty trial, then nil. The returned block becomes the source for
// subsequent NextTrial calls.
func (it *Iterator) NextBlock() *Block {
	it.trialIdx = -1

	if it.design == nil || len(it.design.Blocks) == 0 {
		if it.servedEmpty {
			it.current = nil
			return nil
		}
		it.servedEmpty = true
		it.current = placeholderBlock()
		return it.current
	}

	it.blockIdx++
	if it.blockIdx >= len(it.design.Blocks) {
		it.current = nil
		return nil
	}
	it.current = it.design.Blocks[it.blockIdx]
	return it.current
}

// NextTrial returns the next trial from the block most recently returned by
// NextBlock, or nil when that block's trials are exhausted. Before any
// NextBlock call it serves the implicit placeholder: one empty trial, then
// nil.
func (it *Iterator) NextTrial() *Trial {
	if it.current == nil {
		return nil
	}
	it.trialIdx++
	if it.trialIdx >= len(it.current.Trials) {
		return nil
	}
	return it.current.Trials[it.trialIdx]
}
