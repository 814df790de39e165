package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDesign = `
blocks:
  - name: practice
    trials:
      - condition: left
        target: 1
      - condition: right
        target: 2
  - trials:
      - condition: left
        target: 1
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleDesign))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(d.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(d.Blocks))
	}
	if d.Blocks[0].Name != "practice" {
		t.Errorf("block name = %q, want %q", d.Blocks[0].Name, "practice")
	}
	if d.Blocks[1].Name != "" {
		t.Errorf("unnamed block should have empty name, got %q", d.Blocks[1].Name)
	}
	if len(d.Blocks[0].Trials) != 2 {
		t.Fatalf("len(block 0 trials) = %d, want 2", len(d.Blocks[0].Trials))
	}
	if got := d.Blocks[0].Trials[1].Attrs["condition"]; got != "right" {
		t.Errorf("trial attr condition = %v, want right", got)
	}
	if got := d.Blocks[0].Trials[1].Attrs["target"]; got != 2 {
		t.Errorf("trial attr target = %v, want 2", got)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	d, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse of empty document failed: %v", err)
	}
	if len(d.Blocks) != 0 {
		t.Errorf("empty document should yield empty design, got %d blocks", len(d.Blocks))
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("blocks: [unclosed")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.yaml")
	if err := os.WriteFile(path, []byte(sampleDesign), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.TrialCount() != 3 {
		t.Errorf("TrialCount = %d, want 3", d.TrialCount())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("loading a missing file should fail")
	}
}
