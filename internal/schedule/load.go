package schedule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// designFile is the YAML document shape for a design authored on disk.
type designFile struct {
	Blocks []blockFile `yaml:"blocks"`
}

type blockFile struct {
	Name   string           `yaml:"name"`
	Trials []map[string]any `yaml:"trials"`
}

// Parse builds a design from a YAML document of the form:
//
//	blocks:
//	  - name: practice
//	    trials:
//	      - condition: left
//	      - condition: right
//	  - trials:
//	      - condition: left
//
// Block names are optional. An empty document yields an empty design.
func Parse(data []byte) (*Design, error) {
	var file designFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse design: %w", err)
	}

	d := NewDesign()
	for _, bf := range file.Blocks {
		b := d.AddBlock()
		b.Name = bf.Name
		for _, attrs := range bf.Trials {
			b.AddTrial(attrs)
		}
	}
	return d, nil
}

// Load reads and parses a design file from disk.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design file: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
