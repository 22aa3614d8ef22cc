package tagset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hejijunhao/glossa/internal/model"
)

// file is the on-disk layout of an externalized tag table:
//
//	pos:
//	  - {code: NOUN, description: noun}
//	fine:
//	  - {code: NN, coarse: NOUN, description: "noun, singular or mass"}
type file struct {
	POS  []fileEntry `yaml:"pos"`
	Fine []fileEntry `yaml:"fine"`
}

type fileEntry struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
	Coarse      string `yaml:"coarse,omitempty"`
}

// Load reads a YAML tag table from path.
func Load(path string) (*Tagset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tagset: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return t, nil
}

// Parse builds a Tagset from YAML. POS entries are listed before fine-grained ones.
func Parse(data []byte) (*Tagset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("tagset: parse: %w", err)
	}
	entries := make([]model.TagEntry, 0, len(f.POS)+len(f.Fine))
	for _, e := range f.POS {
		if e.Coarse != "" {
			return nil, fmt.Errorf("tagset: POS entry %q must not declare coarse", e.Code)
		}
		entries = append(entries, pos(e.Code, e.Description))
	}
	for _, e := range f.Fine {
		entries = append(entries, fine(e.Code, e.Coarse, e.Description))
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("tagset: table is empty")
	}
	return New(entries)
}

// Marshal renders t in the format accepted by Parse.
func Marshal(t *Tagset) ([]byte, error) {
	var f file
	for _, e := range t.Entries() {
		fe := fileEntry{Code: e.Code, Description: e.Description, Coarse: e.Coarse}
		if e.Category == model.POS {
			f.POS = append(f.POS, fe)
		} else {
			f.Fine = append(f.Fine, fe)
		}
	}
	return yaml.Marshal(&f)
}
