// Package config defines the taskrun configuration, loaded via viper from
// a YAML config file, environment variables (prefix TASKRUN_), and command
// flags.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete taskrun configuration
type Config struct {
	Session SessionConfig `mapstructure:"session"`
	Task    TaskConfig    `mapstructure:"task"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SessionConfig controls where session artifacts are written and how the
// session is identified
type SessionConfig struct {
	// Subject is the participant identifier recorded with the session
	Subject string `mapstructure:"subject"`
	// Dir is the directory session logs and data are written to.
	// Empty means a "sessions/<subject>" directory under the working directory.
	Dir string `mapstructure:"dir"`
}

// TaskConfig controls task advancement behavior
type TaskConfig struct {
	// AdvanceTrialKey is the key that advances to the next trial
	// Options: "return", "space", "escape", "none"
	AdvanceTrialKey string `mapstructure:"advance_trial_key"`
	// AdvanceBlockKey is the key that begins the next block.
	// "none" selects automatic block advancement.
	AdvanceBlockKey string `mapstructure:"advance_block_key"`
	// TrialTimeoutMs advances trials automatically after this many
	// milliseconds (0 = disabled)
	TrialTimeoutMs int `mapstructure:"trial_timeout_ms"`
}

// LoggingConfig controls structured session logging
type LoggingConfig struct {
	// Enabled turns file logging on or off
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum level written: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
}

// TrialTimeout returns the trial timeout as a duration, zero when disabled.
func (c *TaskConfig) TrialTimeout() time.Duration {
	return time.Duration(c.TrialTimeoutMs) * time.Millisecond
}

// SessionDir resolves the directory session artifacts are written to.
func (c *Config) SessionDir() string {
	if c.Session.Dir != "" {
		return c.Session.Dir
	}
	return filepath.Join("sessions", c.Session.Subject)
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			Subject: "anonymous",
		},
		Task: TaskConfig{
			AdvanceTrialKey: "return",
			AdvanceBlockKey: "return",
			TrialTimeoutMs:  0,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers the built-in defaults with viper so they apply even
// without a config file
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("session.subject", defaults.Session.Subject)
	viper.SetDefault("session.dir", defaults.Session.Dir)

	viper.SetDefault("task.advance_trial_key", defaults.Task.AdvanceTrialKey)
	viper.SetDefault("task.advance_block_key", defaults.Task.AdvanceBlockKey)
	viper.SetDefault("task.trial_timeout_ms", defaults.Task.TrialTimeoutMs)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and
// validates it. Unrecognized values fail here rather than being silently
// substituted.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskrun")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskrun"
	}
	return filepath.Join(home, ".config", "taskrun")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
