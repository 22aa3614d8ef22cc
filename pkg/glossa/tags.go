package glossa

import (
	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagset"
)

// NoDescription is returned by Explain for codes missing from the table.
const NoDescription = tagset.NoDescription

// ErrInvalidArgument is returned by Explain for an empty code.
var ErrInvalidArgument = tagset.ErrInvalidArgument

// Category distinguishes universal POS codes from fine-grained tags.
type Category string

const (
	POS         Category = "pos"  // universal part of speech: NOUN, VERB, ...
	FineGrained Category = "fine" // Penn Treebank and extensions: NN, VBD, ...
)

// TagInfo describes one entry of the tag table.
type TagInfo struct {
	Code        string   `json:"code"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Coarse      string   `json:"coarse,omitempty"` // universal POS of a fine tag
}

// Explain returns the description of code from the built-in table.
func Explain(code string) (string, error) {
	return tagset.Default().Explain(code)
}

// Lookup returns the built-in entry for code.
func Lookup(code string) (TagInfo, bool) {
	return lookup(tagset.Default(), code)
}

// Tags lists the built-in table in order, optionally filtered by category.
func Tags(categories ...Category) []TagInfo {
	return list(tagset.Default(), categories)
}

func lookup(t *tagset.Tagset, code string) (TagInfo, bool) {
	e, ok := t.Lookup(code)
	if !ok {
		return TagInfo{}, false
	}
	return infoFromEntry(e), true
}

func list(t *tagset.Tagset, categories []Category) []TagInfo {
	cats := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if mc, ok := model.ParseCategory(string(c)); ok {
			cats = append(cats, mc)
		}
	}
	if len(categories) > 0 && len(cats) == 0 {
		return nil
	}
	entries := t.Entries(cats...)
	infos := make([]TagInfo, len(entries))
	for i, e := range entries {
		infos[i] = infoFromEntry(e)
	}
	return infos
}

func infoFromEntry(e model.TagEntry) TagInfo {
	return TagInfo{
		Code:        e.Code,
		Category:    Category(e.Category.String()),
		Description: e.Description,
		Coarse:      e.Coarse,
	}
}
