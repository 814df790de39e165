package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openhci/taskrun/internal/schedule"
)

// TrialLogFile is the name of the trial log within a session directory
const TrialLogFile = "trials.yaml"

// Record is one persisted trial entry
type Record struct {
	Task  string         `yaml:"task"`
	Block int            `yaml:"block"`
	Trial int            `yaml:"trial"`
	Time  time.Time      `yaml:"time"`
	Attrs map[string]any `yaml:"attrs,omitempty"`
}

// TrialLog writes trial records to a session directory as a YAML stream.
// Each record is its own document, prefixed with an explicit marker, so
// appending to an existing log from a later process keeps the stream valid.
type TrialLog struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewTrialLog opens the trial log in dir, creating the directory if needed.
// Records append to an existing log so an interrupted session can resume
// into the same file.
func NewTrialLog(dir string) (*TrialLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	path := filepath.Join(dir, TrialLogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trial log: %w", err)
	}

	return &TrialLog{
		file: f,
		path: path,
	}, nil
}

// Path returns the location of the trial log file.
func (l *TrialLog) Path() string { return l.path }

// WriteTrial appends one record to the log. Safe for concurrent use.
func (l *TrialLog) WriteTrial(taskName string, tr *schedule.Trial) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return fmt.Errorf("trial log is closed")
	}

	rec := Record{
		Task:  taskName,
		Block: tr.Block,
		Trial: tr.Index,
		Time:  time.Now().UTC(),
		Attrs: tr.Attrs,
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode trial record: %w", err)
	}
	if _, err := l.file.Write(append([]byte("---\n"), data...)); err != nil {
		return fmt.Errorf("failed to write trial record: %w", err)
	}
	return nil
}

// Close flushes and closes the log. Further writes fail.
func (l *TrialLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ReadRecords loads every record from a trial log file, mostly useful for
// post-session analysis and tests.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trial log: %w", err)
	}
	defer f.Close()

	var records []Record
	dec := yaml.NewDecoder(f)
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode trial record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
