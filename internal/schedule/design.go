package schedule

// Trial is the smallest schedule unit: a named-attribute record describing
// one task iteration. Attrs is read-only once iteration begins.
type Trial struct {
	// Attrs holds the trial's attributes (condition labels, indices, ...).
	Attrs map[string]any

	// Index is the trial's position within its block.
	Index int

	// Block is the index of the owning block.
	Block int
}

// Block is an ordered group of trials sharing a schedule-level grouping,
// such as a condition block.
type Block struct {
	// Name is an optional human-readable label, e.g. "practice".
	Name string

	// Index is the block's position within the design.
	Index int

	// Trials holds the block's trials in run order.
	Trials []*Trial
}

// AddTrial appends a trial with the given attributes and returns it. A nil
// attrs map yields a trial with an empty attribute set.
func (b *Block) AddTrial(attrs map[string]any) *Trial {
	if attrs == nil {
		attrs = map[string]any{}
	}
	t := &Trial{
		Attrs: attrs,
		Index: len(b.Trials),
		Block: b.Index,
	}
	b.Trials = append(b.Trials, t)
	return t
}

// Design is the full ordered block-of-trials structure driving a task run.
type Design struct {
	Blocks []*Block
}

// NewDesign creates an empty design for incremental construction.
func NewDesign() *Design {
	return &Design{}
}

// AddBlock appends an empty block and returns it.
func (d *Design) AddBlock() *Block {
	b := &Block{Index: len(d.Blocks)}
	d.Blocks = append(d.Blocks, b)
	return b
}

// FromAttrs builds a design wholesale from per-block trial attribute maps.
func FromAttrs(blocks [][]map[string]any) *Design {
	d := NewDesign()
	for _, trials := range blocks {
		b := d.AddBlock()
		for _, attrs := range trials {
			b.AddTrial(attrs)
		}
	}
	return d
}

// TrialCount returns the total number of trials across all blocks.
func (d *Design) TrialCount() int {
	n := 0
	for _, b := range d.Blocks {
		n += len(b.Trials)
	}
	return n
}
