package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openhci/taskrun/internal/experiment"
	"github.com/openhci/taskrun/internal/schedule"
	"github.com/openhci/taskrun/internal/task"
)

const progressWidth = 40

// Model is the Bubbletea model for a running session
type Model struct {
	exp   *experiment.Experiment
	names []string

	taskName  string
	taskIndex int
	block     *schedule.Block
	trial     *schedule.Trial
	progress  progress.Model

	done     bool
	err      error
	quitting bool

	width  int
	height int
}

// NewModel creates the session model
func NewModel(e *experiment.Experiment, names []string) Model {
	return Model{
		exp:       e,
		names:     names,
		taskIndex: -1,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(progressWidth),
		),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 16; w > 0 && w < progressWidth {
			m.progress.Width = w
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		default:
			if key := keyCode(msg); key != task.KeyNone {
				m.exp.KeyPress(key)
			}
		}

	case taskStartedMsg:
		m.taskName = msg.name
		m.taskIndex++
		m.block = nil
		m.trial = nil

	case blockStartedMsg:
		m.block = msg.block
		m.trial = nil

	case trialStartedMsg:
		m.trial = msg.trial

	case sessionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// keyCode translates a terminal key event into a task key code. Keys with no
// task meaning map to KeyNone.
func keyCode(msg tea.KeyMsg) string {
	switch msg.String() {
	case "enter":
		return task.KeyReturn
	case " ":
		return task.KeySpace
	case "esc":
		return task.KeyEscape
	default:
		return task.KeyNone
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("taskrun — subject %s", m.exp.Subject())))
	sb.WriteString("\n")

	if m.done {
		if m.err != nil {
			sb.WriteString(errStyle.Render(fmt.Sprintf("Session ended with error: %v", m.err)))
		} else {
			sb.WriteString(doneStyle.Render("Session complete."))
		}
		sb.WriteString(helpStyle.Render("\nPress q to exit"))
		return appStyle.Render(sb.String())
	}

	sb.WriteString(labelStyle.Render("Task"))
	sb.WriteString(valueStyle.Render(m.taskLine()))
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("Block"))
	sb.WriteString(valueStyle.Render(m.blockLine()))
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("Trial"))
	sb.WriteString(m.trialLine())
	sb.WriteString("\n")

	if m.block != nil && m.trial != nil && len(m.block.Trials) > 0 {
		frac := float64(m.trial.Index+1) / float64(len(m.block.Trials))
		sb.WriteString(labelStyle.Render(""))
		sb.WriteString(m.progress.ViewAs(frac))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("enter: advance • q: quit"))
	return appStyle.Render(sb.String())
}

func (m Model) taskLine() string {
	if m.taskName == "" {
		return "starting..."
	}
	return fmt.Sprintf("%s (%d/%d)", m.taskName, m.taskIndex+1, len(m.names))
}

func (m Model) blockLine() string {
	if m.block == nil {
		return "-"
	}
	name := m.block.Name
	if name == "" {
		name = fmt.Sprintf("block %d", m.block.Index)
	}
	return name
}

func (m Model) trialLine() string {
	if m.block == nil {
		return valueStyle.Render("-")
	}
	if m.trial == nil {
		return waitStyle.Render("waiting to begin block")
	}
	return valueStyle.Render(fmt.Sprintf("%d/%d", m.trial.Index+1, len(m.block.Trials)))
}
