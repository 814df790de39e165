package experiment

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openhci/taskrun/internal/schedule"
	"github.com/openhci/taskrun/internal/task"
)

// memorySink collects trial records in memory.
type memorySink struct {
	mu      sync.Mutex
	records []string
}

func (s *memorySink) WriteTrial(taskName string, tr *schedule.Trial) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, taskName)
	return nil
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func timedTask(trials int) *task.Task {
	t := task.New(
		task.WithAdvanceBlockKey(task.KeyNone),
		task.WithTrialTimeout(5*time.Millisecond),
	)
	b := t.AddBlock()
	for i := 0; i < trials; i++ {
		b.AddTrial(map[string]any{"trial": i})
	}
	return t
}

// drive advances whichever task is current until stop closes. Tasks are
// also advanced by their trial timers; programmatic advancement on top of
// that is harmless since every advance visits at most one trial.
func drive(e *Experiment, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		if ct := e.CurrentTask(); ct != nil {
			ct.NextTrial()
		}
		time.Sleep(time.Millisecond)
	}
}

func TestExperiment_RunsTasksInOrder(t *testing.T) {
	sink := &memorySink{}
	e := New("p01", WithStorage(sink))

	var started []string
	e.TaskStarted.Connect(func(args ...any) {
		started = append(started, args[0].(string))
	})
	completed := false
	e.Completed.Connect(func(args ...any) { completed = true })
	var trialCount int32
	e.TrialStarted.Connect(func(args ...any) { atomic.AddInt32(&trialCount, 1) })

	first := timedTask(2)
	second := timedTask(1)
	e.AddTask("practice", first)
	e.AddTask("main", second)

	stop := make(chan struct{})
	defer close(stop)
	go drive(e, stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(started) != 2 || started[0] != "practice" || started[1] != "main" {
		t.Errorf("task start order = %v, want [practice main]", started)
	}
	if !completed {
		t.Error("Completed should emit after the last task")
	}
	if sink.count() != 3 {
		t.Errorf("sink received %d trial records, want 3", sink.count())
	}
	if n := atomic.LoadInt32(&trialCount); n != 3 {
		t.Errorf("TrialStarted re-emitted %d times, want 3", n)
	}
	if first.State() != task.StateFinished || second.State() != task.StateFinished {
		t.Error("all tasks should be finished")
	}
}

func TestExperiment_PassesCollaboratorHandles(t *testing.T) {
	e := New("p02", WithView("canvas"), WithInputStream("daq"), WithStorage("store"))

	tk := timedTask(1)
	e.AddTask("only", tk)

	stop := make(chan struct{})
	defer close(stop)
	go drive(e, stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if tk.View() != "canvas" || tk.InputStream() != "daq" || tk.Storage() != "store" {
		t.Error("collaborator handles not passed through to the task")
	}
}

func TestExperiment_NoTasks(t *testing.T) {
	e := New("p03")
	if err := e.Run(context.Background()); err == nil {
		t.Error("running an empty experiment should fail")
	}
}

func TestExperiment_ContextCancellation(t *testing.T) {
	e := New("p04")
	// A key-driven task that never receives input.
	tk := task.New()
	tk.AddBlock().AddTrial(nil)
	e.AddTask("stuck", tk)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- e.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestExperiment_KeyPressForwarding(t *testing.T) {
	e := New("p05")
	tk := task.New() // key-driven, 1 block x 1 trial
	tk.AddBlock().AddTrial(map[string]any{"trial": 0})
	e.AddTask("keys", tk)

	// Dropped silently: no task running yet.
	e.KeyPress(task.KeyReturn)

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	deadline := time.After(5 * time.Second)
	for tk.State() != task.StateFinished {
		e.KeyPress(task.KeyReturn)
		select {
		case <-deadline:
			t.Fatal("task did not finish under key forwarding")
		default:
		}
		time.Sleep(time.Millisecond)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
