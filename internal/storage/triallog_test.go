package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openhci/taskrun/internal/schedule"
)

func TestTrialLog_WriteAndReadBack(t *testing.T) {
	dir := t.TempDir()

	log, err := NewTrialLog(dir)
	if err != nil {
		t.Fatalf("NewTrialLog failed: %v", err)
	}

	trials := []*schedule.Trial{
		{Attrs: map[string]any{"target": 30}, Index: 0, Block: 0},
		{Attrs: map[string]any{"target": 60}, Index: 1, Block: 0},
		{Attrs: nil, Index: 0, Block: 1},
	}
	for _, tr := range trials {
		if err := log.WriteTrial("reaching", tr); err != nil {
			t.Fatalf("WriteTrial failed: %v", err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	records, err := ReadRecords(log.Path())
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Task != "reaching" || records[0].Block != 0 || records[0].Trial != 0 {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Attrs["target"] != 60 {
		t.Errorf("attrs not preserved: %+v", records[1].Attrs)
	}
	if records[2].Block != 1 {
		t.Errorf("block index not preserved: %+v", records[2])
	}
}

func TestTrialLog_AppendsAcrossReopens(t *testing.T) {
	dir := t.TempDir()

	log, err := NewTrialLog(dir)
	if err != nil {
		t.Fatalf("NewTrialLog failed: %v", err)
	}
	if err := log.WriteTrial("a", &schedule.Trial{Index: 0, Block: 0}); err != nil {
		t.Fatalf("WriteTrial failed: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	log, err = NewTrialLog(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if err := log.WriteTrial("b", &schedule.Trial{Index: 0, Block: 0}); err != nil {
		t.Fatalf("WriteTrial after reopen failed: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	records, err := ReadRecords(log.Path())
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if len(records) != 2 || records[0].Task != "a" || records[1].Task != "b" {
		t.Errorf("records after reopen = %+v", records)
	}
}

func TestTrialLog_WriteAfterClose(t *testing.T) {
	log, err := NewTrialLog(t.TempDir())
	if err != nil {
		t.Fatalf("NewTrialLog failed: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := log.WriteTrial("x", &schedule.Trial{}); err == nil {
		t.Error("WriteTrial after Close should fail")
	}
	// Close is idempotent.
	if err := log.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestNewTrialLog_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions", "p01")

	log, err := NewTrialLog(dir)
	if err != nil {
		t.Fatalf("NewTrialLog failed: %v", err)
	}
	defer log.Close()

	if _, err := os.Stat(filepath.Join(dir, TrialLogFile)); err != nil {
		t.Errorf("trial log file not created: %v", err)
	}
}
