package model

// Category distinguishes coarse part-of-speech codes from fine-grained tags.
type Category int

const (
	POS         Category = iota // universal coarse part of speech (NOUN, VERB, ...)
	FineGrained                 // tag-set specific code (NN, VBD, ...)
)

// String returns the name used in tag tables and JSON output.
func (c Category) String() string {
	switch c {
	case POS:
		return "pos"
	case FineGrained:
		return "fine"
	default:
		return "unknown"
	}
}

// ParseCategory converts "pos" or "fine" to a Category.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "pos", "POS", "coarse":
		return POS, true
	case "fine", "FineGrained", "tag":
		return FineGrained, true
	default:
		return 0, false
	}
}

// TagEntry is one row of the tag table.
type TagEntry struct {
	Code        string
	Category    Category
	Description string
	Coarse      string // universal POS for fine-grained entries, empty otherwise
}
