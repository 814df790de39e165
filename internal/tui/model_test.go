package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openhci/taskrun/internal/experiment"
	"github.com/openhci/taskrun/internal/schedule"
	"github.com/openhci/taskrun/internal/task"
)

func testModel() Model {
	e := experiment.New("p01")
	return NewModel(e, []string{"practice", "main"})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_LifecycleMessages(t *testing.T) {
	m := testModel()

	m = update(m, taskStartedMsg{name: "practice"})
	if m.taskName != "practice" || m.taskIndex != 0 {
		t.Errorf("after task start: name=%q index=%d", m.taskName, m.taskIndex)
	}

	b := &schedule.Block{Name: "warmup", Index: 0}
	b.AddTrial(map[string]any{"target": 30})
	b.AddTrial(map[string]any{"target": 60})
	m = update(m, blockStartedMsg{block: b})
	if m.block != b || m.trial != nil {
		t.Error("block start should set block and clear trial")
	}

	m = update(m, trialStartedMsg{trial: b.Trials[0]})
	if m.trial != b.Trials[0] {
		t.Error("trial start should set the current trial")
	}

	// Next task resets block and trial display.
	m = update(m, taskStartedMsg{name: "main"})
	if m.taskIndex != 1 || m.block != nil || m.trial != nil {
		t.Error("task start should reset block and trial")
	}
}

func TestModel_View(t *testing.T) {
	m := testModel()
	m = update(m, taskStartedMsg{name: "practice"})

	b := &schedule.Block{Name: "warmup", Index: 0}
	b.AddTrial(nil)
	b.AddTrial(nil)
	m = update(m, blockStartedMsg{block: b})

	view := m.View()
	if !strings.Contains(view, "practice (1/2)") {
		t.Errorf("view missing task progress:\n%s", view)
	}
	if !strings.Contains(view, "warmup") {
		t.Errorf("view missing block name:\n%s", view)
	}
	if !strings.Contains(view, "waiting to begin block") {
		t.Errorf("view should show the block-boundary wait:\n%s", view)
	}

	m = update(m, trialStartedMsg{trial: b.Trials[1]})
	view = m.View()
	if !strings.Contains(view, "2/2") {
		t.Errorf("view missing trial progress:\n%s", view)
	}
	if !strings.Contains(view, "█") {
		t.Errorf("view missing progress bar:\n%s", view)
	}
}

func TestModel_SessionDone(t *testing.T) {
	m := testModel()
	next, cmd := m.Update(sessionDoneMsg{err: nil})
	m = next.(Model)

	if !m.done {
		t.Error("done flag should be set")
	}
	if cmd == nil {
		t.Error("session completion should quit the program")
	}
	if !strings.Contains(m.View(), "Session complete") {
		t.Errorf("view missing completion message:\n%s", m.View())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := testModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if !next.(Model).quitting {
		t.Error("quitting flag should be set")
	}
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, task.KeyReturn},
		{tea.KeyMsg{Type: tea.KeySpace}, task.KeySpace},
		{tea.KeyMsg{Type: tea.KeyEsc}, task.KeyEscape},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, task.KeyNone},
	}
	for _, tt := range tests {
		if got := keyCode(tt.msg); got != tt.want {
			t.Errorf("keyCode(%q) = %q, want %q", tt.msg.String(), got, tt.want)
		}
	}
}
