package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openhci/taskrun/internal/schedule"
)

var checkCmd = &cobra.Command{
	Use:   "check <design.yaml> [design.yaml...]",
	Short: "Validate design files and print their schedules",
	Long: `Check parses each design file and prints a summary of its blocks and
trials without running anything. Use it to verify a design before a
session.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		design, err := schedule.Load(path)
		if err != nil {
			return err
		}
		printDesign(cmd, path, design)
	}
	return nil
}

func printDesign(cmd *cobra.Command, path string, design *schedule.Design) {
	cmd.Printf("%s: %d blocks, %d trials\n", path, len(design.Blocks), design.TrialCount())
	for _, b := range design.Blocks {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("block %d", b.Index)
		}
		cmd.Printf("  %s: %d trials", name, len(b.Trials))
		if keys := attrKeys(b); len(keys) > 0 {
			cmd.Printf(" (attrs: %v)", keys)
		}
		cmd.Println()
	}
}

// attrKeys collects the union of attribute names across a block's trials.
func attrKeys(b *schedule.Block) []string {
	seen := make(map[string]struct{})
	for _, tr := range b.Trials {
		for k := range tr.Attrs {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
