package schedule

import "testing"

func TestDesign_IncrementalConstruction(t *testing.T) {
	d := NewDesign()
	for b := 0; b < 2; b++ {
		block := d.AddBlock()
		if block.Index != b {
			t.Errorf("block index = %d, want %d", block.Index, b)
		}
		for tr := 0; tr < 2; tr++ {
			trial := block.AddTrial(nil)
			if trial.Index != tr {
				t.Errorf("trial index = %d, want %d", trial.Index, tr)
			}
			if trial.Block != b {
				t.Errorf("trial block = %d, want %d", trial.Block, b)
			}
			if trial.Attrs == nil {
				t.Error("AddTrial(nil) should yield an empty attribute map")
			}
		}
	}
	if d.TrialCount() != 4 {
		t.Errorf("TrialCount = %d, want 4", d.TrialCount())
	}
}

func TestFromAttrs(t *testing.T) {
	rows := [][]map[string]any{
		{{"condition": "left"}, {"condition": "right"}},
		{{"condition": "left"}},
	}
	d := FromAttrs(rows)

	if len(d.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(d.Blocks))
	}
	if got := d.Blocks[0].Trials[1].Attrs["condition"]; got != "right" {
		t.Errorf("attrs not carried through, got %v", got)
	}
	if d.Blocks[1].Trials[0].Block != 1 {
		t.Errorf("trial block index = %d, want 1", d.Blocks[1].Trials[0].Block)
	}
}
