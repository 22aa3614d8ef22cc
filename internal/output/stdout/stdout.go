package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/output"
)

// Output writes JSON-encoded annotations, one per line, to stdout or another writer.
type Output struct {
	enc       *json.Encoder
	verbosity output.Verbosity
}

// New creates a JSON Output writing to w (os.Stdout when nil) with
// verbosity-aware field omission and optional pretty-printing.
func New(w io.Writer, verbosity output.Verbosity, pretty bool) *Output {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc, verbosity: verbosity}
}

func (o *Output) Write(_ context.Context, ann model.Annotation) error {
	if err := o.enc.Encode(output.FormatAnnotation(ann, o.verbosity)); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
