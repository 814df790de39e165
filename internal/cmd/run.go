package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openhci/taskrun/internal/config"
	"github.com/openhci/taskrun/internal/experiment"
	"github.com/openhci/taskrun/internal/logging"
	"github.com/openhci/taskrun/internal/schedule"
	"github.com/openhci/taskrun/internal/storage"
	"github.com/openhci/taskrun/internal/task"
	"github.com/openhci/taskrun/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run <design.yaml> [design.yaml...]",
	Short: "Run an experiment session",
	Long: `Run executes one session: each design file becomes a task, run in the
order given. Trial records are appended to trials.yaml in the session
directory.

Examples:
  # Run a single task for the default subject
  taskrun run reaching.yaml

  # Run practice then main task for subject p01
  taskrun run -s p01 practice.yaml main.yaml

  # Run without the terminal UI (requires timer-driven advancement)
  taskrun run --headless timed.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

var runHeadless bool

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run without the terminal UI")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sessionDir := cfg.SessionDir()

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(sessionDir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to open session log: %w", err)
		}
		defer log.Close()
	}

	trialLog, err := storage.NewTrialLog(sessionDir)
	if err != nil {
		return err
	}
	defer trialLog.Close()

	e := experiment.New(cfg.Session.Subject,
		experiment.WithStorage(trialLog),
		experiment.WithLogger(log),
	)

	var names []string
	var tasks []*task.Task
	for _, path := range args {
		design, err := schedule.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		t, err := taskFromConfig(cfg, design)
		if err != nil {
			return err
		}
		name := taskName(path)
		e.AddTask(name, t)
		names = append(names, name)
		tasks = append(tasks, t)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	if runHeadless {
		if cfg.Task.TrialTimeoutMs == 0 {
			return fmt.Errorf("headless mode needs task.trial_timeout_ms set, otherwise no trial can ever advance")
		}
		// No operator, so block boundaries cannot wait for a key, and each
		// task's first trial needs a programmatic kick before the trial
		// timer can take over.
		for _, t := range tasks {
			t.SetAdvanceBlockKey(task.KeyNone)
		}
		go func() {
			ticker := time.NewTicker(50 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if ct := e.CurrentTask(); ct != nil && ct.Trial() == nil {
						ct.NextTrial()
					}
				}
			}
		}()
		return e.Run(ctx)
	}

	app := tui.New(e, names)
	return app.Run(ctx)
}

// taskName derives a task name from a design file path: the base name
// without its extension.
func taskName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// taskFromConfig builds a task over a loaded design using the configured
// advancement policy.
func taskFromConfig(cfg *config.Config, design *schedule.Design) (*task.Task, error) {
	trialKey, err := keyFromName(cfg.Task.AdvanceTrialKey)
	if err != nil {
		return nil, err
	}
	blockKey, err := keyFromName(cfg.Task.AdvanceBlockKey)
	if err != nil {
		return nil, err
	}

	opts := []task.Option{
		task.WithAdvanceTrialKey(trialKey),
		task.WithAdvanceBlockKey(blockKey),
	}
	if timeout := cfg.Task.TrialTimeout(); timeout > 0 {
		opts = append(opts, task.WithTrialTimeout(timeout))
	}

	t := task.New(opts...)
	t.Design(design)
	return t, nil
}

// keyFromName maps a configured key name to a key code. "none" selects
// automatic advancement.
func keyFromName(name string) (string, error) {
	switch name {
	case "return":
		return task.KeyReturn, nil
	case "space":
		return task.KeySpace, nil
	case "escape":
		return task.KeyEscape, nil
	case "none":
		return task.KeyNone, nil
	default:
		return "", fmt.Errorf("unrecognized key name: %q", name)
	}
}
