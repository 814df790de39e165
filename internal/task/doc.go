// Package task implements the controller that sequences an experiment task
// through its trial schedule.
//
// A Task composes a schedule iterator with the event bus: external stimuli
// (key presses, timer timeouts, programmatic calls) drive block and trial
// advancement, and decoupled observers learn about lifecycle transitions
// through the BlockStarted, TrialStarted, and Finished transmitters.
//
// Advancement during a single step always proceeds trial first, then block,
// then finish: a trial-level advance that exhausts the current block falls
// through to the next block, and a block-level advance that exhausts the
// schedule finishes the task. Finished is emitted exactly once; afterwards
// the task is terminal and further advancement calls are no-ops.
//
// Receivers bound to the task's transmitters must not trigger advancement
// themselves; nested advancement is undefined.
package task
