// Package logging provides structured logging for taskrun sessions.
//
// It wraps Go's log/slog to produce JSON-formatted logs suitable for
// post-hoc analysis of an experiment session. A logger writes to
// {sessionDir}/session.log, or to stderr when no session directory is
// configured.
//
// Child loggers created with the With* methods carry persistent context
// (session, task, block, trial) on every entry:
//
//	log := logger.WithSession("p03-2026-08-25").WithTask("cursor")
//	log.Info("trial started", "block", 1, "trial", 4)
//
// All types are safe for concurrent use. Use [NopLogger] in tests to
// discard output.
package logging
