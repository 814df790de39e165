// Package experiment runs an ordered set of tasks as one research session.
//
// An Experiment holds the collaborators shared by every task (rendering
// surface, input stream, storage) and chains tasks on their Finished
// events: when one task's schedule is exhausted, the next task is prepared
// and run. Key input is forwarded to whichever task is currently active.
package experiment
