package output

import (
	"strings"

	"github.com/hejijunhao/glossa/internal/model"
)

// Verbosity controls how much explanation is kept in written annotations.
type Verbosity int

const (
	Minimal  Verbosity = iota // text and codes only
	Standard                  // plus fine-tag description
	Full                      // plus coarse POS description
)

// ParseVerbosity maps "minimal", "standard", or "full" to a Verbosity.
// Unknown strings default to Standard.
func ParseVerbosity(s string) Verbosity {
	switch strings.ToLower(s) {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// FormatAnnotation returns a copy of ann with descriptions stripped according
// to verbosity. The input is not modified.
func FormatAnnotation(ann model.Annotation, v Verbosity) model.Annotation {
	if v == Full {
		return ann
	}
	toks := make([]model.AnnotatedToken, len(ann.Tokens))
	for i, tok := range ann.Tokens {
		tok.POSDescription = ""
		if v == Minimal {
			tok.TagDescription = ""
		}
		toks[i] = tok
	}
	ann.Tokens = toks
	return ann
}
