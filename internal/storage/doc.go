// Package storage persists trial records for a session.
//
// The trial log is an append-only YAML stream, one document per trial, so a
// crashed session keeps everything written up to the crash. It satisfies the
// experiment package's TrialSink and receives each trial as it begins.
package storage
