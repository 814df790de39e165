package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "task.advance_trial_key")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidKeys returns the list of valid advance key names. "none" disables
// key-driven advancement for that level.
func ValidKeys() []string {
	return []string{"return", "space", "escape", "none"}
}

// Validate checks the configuration for invalid values and returns all
// failures found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if !slices.Contains(ValidKeys(), c.Task.AdvanceTrialKey) {
		errs = append(errs, ValidationError{
			Field:   "task.advance_trial_key",
			Value:   c.Task.AdvanceTrialKey,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidKeys(), ", ")),
		})
	}
	if !slices.Contains(ValidKeys(), c.Task.AdvanceBlockKey) {
		errs = append(errs, ValidationError{
			Field:   "task.advance_block_key",
			Value:   c.Task.AdvanceBlockKey,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidKeys(), ", ")),
		})
	}
	if c.Task.TrialTimeoutMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "task.trial_timeout_ms",
			Value:   c.Task.TrialTimeoutMs,
			Message: "must be zero or positive",
		})
	}
	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Session.Subject == "" {
		errs = append(errs, ValidationError{
			Field:   "session.subject",
			Value:   c.Session.Subject,
			Message: "must not be empty",
		})
	}

	return errs
}
