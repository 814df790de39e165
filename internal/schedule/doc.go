// Package schedule defines the two-level trial schedule driving a task run
// and the iterator that walks it.
//
// A Design is an ordered sequence of Blocks, each an ordered sequence of
// Trials. Trials are named-attribute records describing one task iteration;
// they are constructed up front and treated as read-only once iteration
// begins. Designs can be supplied wholesale ([FromAttrs], [Load]) or built
// incrementally ([Design.AddBlock], [Block.AddTrial]).
//
// An Iterator yields blocks and trials strictly in schedule order, with nil
// as the termination sentinel. Iteration is snapshot-based: the iterator
// captures the design at construction, and mutating a design after
// iteration has begun is unsupported.
package schedule
