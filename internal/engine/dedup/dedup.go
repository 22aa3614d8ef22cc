package dedup

// Batch maps a list of texts onto its distinct members so that repeated
// inputs are tagged once.
type Batch struct {
	Unique []string // distinct texts in first-occurrence order
	Index  []int    // Index[i] is the position in Unique of input i
}

// Collapse groups identical texts. Matching is exact: texts differing only in
// case or whitespace are distinct.
func Collapse(texts []string) Batch {
	b := Batch{Index: make([]int, len(texts))}
	seen := make(map[string]int, len(texts))
	for i, t := range texts {
		pos, ok := seen[t]
		if !ok {
			pos = len(b.Unique)
			seen[t] = pos
			b.Unique = append(b.Unique, t)
		}
		b.Index[i] = pos
	}
	return b
}

// Duplicates reports how many inputs were folded into an earlier one.
func (b Batch) Duplicates() int {
	return len(b.Index) - len(b.Unique)
}

// Expand fans per-unique results back out to one result per original input.
// results must be aligned with b.Unique.
func Expand[T any](b Batch, results []T) []T {
	out := make([]T, len(b.Index))
	for i, pos := range b.Index {
		out[i] = results[pos]
	}
	return out
}
