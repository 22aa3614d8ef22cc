package tagset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleYAML = `
pos:
  - code: NOUN
    description: noun
  - code: VERB
    description: verb
fine:
  - code: NN
    coarse: NOUN
    description: noun, singular or mass
  - code: VBD
    coarse: VERB
    description: verb, past tense
`

func TestParse(t *testing.T) {
	ts, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if ts.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ts.Len())
	}
	if got, _ := ts.Explain("VBD"); got != "verb, past tense" {
		t.Errorf("Explain(VBD) = %q", got)
	}
	if got, _ := ts.CoarseOf("NN"); got != "NOUN" {
		t.Errorf("CoarseOf(NN) = %q, want NOUN", got)
	}
	if got, _ := ts.Explain("DT"); got != NoDescription {
		t.Errorf("Explain(DT) = %q, want sentinel for code absent from file", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"malformed", "pos: [", "parse"},
		{"empty", "", "empty"},
		{"duplicate", "pos:\n  - {code: X, description: other}\n  - {code: X, description: again}\n", "duplicate"},
		{"coarse on pos", "pos:\n  - {code: X, coarse: X, description: other}\n", "must not declare coarse"},
		{"dangling coarse", "fine:\n  - {code: NN, coarse: NOUN, description: noun}\n", "unknown POS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	ts, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ts.Len() != 4 {
		t.Errorf("Len() = %d, want 4", ts.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMarshalRoundTripsDefault(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	ts, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal(Default())) error: %v", err)
	}
	if diff := cmp.Diff(Default().Entries(), ts.Entries()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
