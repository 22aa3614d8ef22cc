package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/output"
)

// Output prints annotations as aligned, human-readable tables:
//
//	# She ran.
//	She  PRON  PRP  pronoun, personal
//	ran  VERB  VBD  verb, past tense
type Output struct {
	mu        sync.Mutex
	w         io.Writer
	verbosity output.Verbosity
	header    bool
}

// Option configures a text Output.
type Option func(*Output)

// WithoutHeader suppresses the "# text" line before each table.
func WithoutHeader() Option {
	return func(o *Output) { o.header = false }
}

// New creates a text Output writing to w (os.Stdout when nil).
func New(w io.Writer, verbosity output.Verbosity, opts ...Option) *Output {
	if w == nil {
		w = os.Stdout
	}
	o := &Output{w: w, verbosity: verbosity, header: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) Write(_ context.Context, ann model.Annotation) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	if o.header {
		fmt.Fprintf(tw, "# %s\n", ann.Text)
	}
	for _, tok := range ann.Tokens {
		cols := []string{tok.Text, tok.POS, tok.Tag}
		switch o.verbosity {
		case output.Standard:
			cols = append(cols, tok.TagDescription)
		case output.Full:
			cols = append(cols, tok.TagDescription, tok.POSDescription)
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	fmt.Fprintln(tw)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("text output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
