package timing

import (
	"testing"
	"time"
)

func TestTimer_FiresAfterDuration(t *testing.T) {
	timer := NewTimer(20 * time.Millisecond)

	fired := make(chan struct{}, 1)
	timer.Timeout.Connect(func(args ...any) { fired <- struct{}{} })

	timer.Start()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	if timer.Running() {
		t.Error("timer should not be running after firing")
	}
}

func TestTimer_StopSuppressesEmission(t *testing.T) {
	timer := NewTimer(50 * time.Millisecond)

	fired := make(chan struct{}, 1)
	timer.Timeout.Connect(func(args ...any) { fired <- struct{}{} })

	timer.Start()
	timer.Stop()

	select {
	case <-fired:
		t.Fatal("timeout fired despite Stop before expiry")
	case <-time.After(200 * time.Millisecond):
	}

	if timer.Running() {
		t.Error("timer should not be running after Stop")
	}
}

func TestTimer_StartRestartsCountdown(t *testing.T) {
	timer := NewTimer(30 * time.Millisecond)

	fired := make(chan time.Time, 2)
	timer.Timeout.Connect(func(args ...any) { fired <- time.Now() })

	timer.Start()
	time.Sleep(10 * time.Millisecond)
	restarted := time.Now()
	timer.Start()

	select {
	case at := <-fired:
		if at.Sub(restarted) < 20*time.Millisecond {
			t.Errorf("timer fired %v after restart, countdown was not restarted", at.Sub(restarted))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire after restart")
	}

	select {
	case <-fired:
		t.Fatal("timer fired twice for a single restart cycle")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTimer_StopWithoutStart(t *testing.T) {
	timer := NewTimer(10 * time.Millisecond)
	// Must not panic.
	timer.Stop()
	if timer.Running() {
		t.Error("timer should not be running")
	}
}

func TestTimer_ReusableAcrossCycles(t *testing.T) {
	timer := NewTimer(15 * time.Millisecond)

	fired := make(chan struct{}, 2)
	timer.Timeout.Connect(func(args ...any) { fired <- struct{}{} })

	// A stopped cycle must not leak into a later one.
	timer.Start()
	timer.Stop()

	timer.Start()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire on the second cycle")
	}

	select {
	case <-fired:
		t.Fatal("stopped cycle leaked an emission")
	case <-time.After(100 * time.Millisecond):
	}
}
