// Package cmd implements the taskrun command-line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openhci/taskrun/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "taskrun",
	Short: "Experiment session runner for human-interface research",
	Long: `Taskrun executes trial-based experiment sessions: it loads a block/trial
design, advances through trials on key presses or timers, and records each
trial to the session directory.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskrun/config.yaml)")
	rootCmd.PersistentFlags().StringP("subject", "s", "", "subject identifier for the session")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("session.subject", rootCmd.PersistentFlags().Lookup("subject"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/taskrun")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKRUN")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TASKRUN_TASK_ADVANCE_TRIAL_KEY for task.advance_trial_key
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
