package tagset

import (
	"errors"
	"fmt"

	"github.com/hejijunhao/glossa/internal/model"
)

// NoDescription is returned by Explain for codes that are not in the table.
const NoDescription = "no description available"

// ErrInvalidArgument is returned by Explain when the code is empty.
var ErrInvalidArgument = errors.New("tagset: tag code must not be empty")

// Tagset is an immutable table of tag codes and their descriptions.
// It is never modified after New returns and may be shared across goroutines.
type Tagset struct {
	entries map[string]model.TagEntry
	order   []string
}

// New builds a Tagset from entries, rejecting empty codes, empty descriptions,
// duplicate codes, and fine-grained entries whose coarse tag is not a POS entry.
func New(entries []model.TagEntry) (*Tagset, error) {
	t := &Tagset{
		entries: make(map[string]model.TagEntry, len(entries)),
		order:   make([]string, 0, len(entries)),
	}
	for i, e := range entries {
		if e.Code == "" {
			return nil, fmt.Errorf("tagset: entry %d has empty code", i)
		}
		if e.Description == "" {
			return nil, fmt.Errorf("tagset: %q has empty description", e.Code)
		}
		if _, dup := t.entries[e.Code]; dup {
			return nil, fmt.Errorf("tagset: duplicate code %q", e.Code)
		}
		t.entries[e.Code] = e
		t.order = append(t.order, e.Code)
	}

	for _, code := range t.order {
		e := t.entries[code]
		if e.Coarse == "" {
			continue
		}
		if e.Category != model.FineGrained {
			return nil, fmt.Errorf("tagset: %q: coarse mapping only allowed on fine-grained entries", code)
		}
		c, ok := t.entries[e.Coarse]
		if !ok || c.Category != model.POS {
			return nil, fmt.Errorf("tagset: %q maps to unknown POS %q", code, e.Coarse)
		}
	}
	return t, nil
}

// Explain returns the description for code. Unknown codes yield NoDescription
// and a nil error; an empty code yields ErrInvalidArgument.
// Matching is exact and case-sensitive.
func (t *Tagset) Explain(code string) (string, error) {
	if code == "" {
		return "", ErrInvalidArgument
	}
	if e, ok := t.entries[code]; ok {
		return e.Description, nil
	}
	return NoDescription, nil
}

// Lookup returns the entry for code and whether it exists.
func (t *Tagset) Lookup(code string) (model.TagEntry, bool) {
	e, ok := t.entries[code]
	return e, ok
}

// CoarseOf returns the universal POS for a fine-grained tag.
func (t *Tagset) CoarseOf(fine string) (string, bool) {
	e, ok := t.entries[fine]
	if !ok || e.Coarse == "" {
		return "", false
	}
	return e.Coarse, true
}

// Entries returns the entries in table order, optionally restricted to the
// given categories. The returned slice is a copy.
func (t *Tagset) Entries(categories ...model.Category) []model.TagEntry {
	out := make([]model.TagEntry, 0, len(t.order))
	for _, code := range t.order {
		e := t.entries[code]
		if len(categories) > 0 && !containsCategory(categories, e.Category) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Len returns the number of codes in the table.
func (t *Tagset) Len() int {
	return len(t.order)
}

func containsCategory(cs []model.Category, c model.Category) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
