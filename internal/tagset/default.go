package tagset

import "github.com/hejijunhao/glossa/internal/model"

// defaultSet is built during package initialization and never mutated.
var defaultSet = mustNew(DefaultEntries())

// Default returns the built-in English tag table.
func Default() *Tagset {
	return defaultSet
}

func mustNew(entries []model.TagEntry) *Tagset {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

func pos(code, desc string) model.TagEntry {
	return model.TagEntry{Code: code, Category: model.POS, Description: desc}
}

func fine(code, coarse, desc string) model.TagEntry {
	return model.TagEntry{Code: code, Category: model.FineGrained, Description: desc, Coarse: coarse}
}

// DefaultEntries returns the built-in table: the universal part-of-speech set
// followed by the Penn Treebank tags with the OntoNotes extensions.
func DefaultEntries() []model.TagEntry {
	return []model.TagEntry{
		// Universal POS tags.
		pos("ADJ", "adjective"),
		pos("ADP", "adposition"),
		pos("ADV", "adverb"),
		pos("AUX", "auxiliary"),
		pos("CONJ", "conjunction"),
		pos("CCONJ", "coordinating conjunction"),
		pos("DET", "determiner"),
		pos("INTJ", "interjection"),
		pos("NOUN", "noun"),
		pos("NUM", "numeral"),
		pos("PART", "particle"),
		pos("PRON", "pronoun"),
		pos("PROPN", "proper noun"),
		pos("PUNCT", "punctuation"),
		pos("SCONJ", "subordinating conjunction"),
		pos("SYM", "symbol"), // also the Penn tag for symbols
		pos("VERB", "verb"),
		pos("X", "other"),
		pos("EOL", "end of line"),
		pos("SPACE", "space"),

		// Penn Treebank.
		fine(".", "PUNCT", "punctuation mark, sentence closer"),
		fine(",", "PUNCT", "punctuation mark, comma"),
		fine("-LRB-", "PUNCT", "left round bracket"),
		fine("-RRB-", "PUNCT", "right round bracket"),
		fine("``", "PUNCT", "opening quotation mark"),
		fine(`""`, "PUNCT", "closing quotation mark"),
		fine("''", "PUNCT", "closing quotation mark"),
		fine(":", "PUNCT", "punctuation mark, colon or ellipsis"),
		fine("$", "SYM", "symbol, currency"),
		fine("#", "SYM", "symbol, number sign"),
		fine("AFX", "ADJ", "affix"),
		fine("CC", "CCONJ", "conjunction, coordinating"),
		fine("CD", "NUM", "cardinal number"),
		fine("DT", "DET", "determiner"),
		fine("EX", "PRON", "existential there"),
		fine("FW", "X", "foreign word"),
		fine("HYPH", "PUNCT", "punctuation mark, hyphen"),
		fine("IN", "ADP", "conjunction, subordinating or preposition"),
		fine("JJ", "ADJ", "adjective"),
		fine("JJR", "ADJ", "adjective, comparative"),
		fine("JJS", "ADJ", "adjective, superlative"),
		fine("LS", "X", "list item marker"),
		fine("MD", "VERB", "verb, modal auxiliary"),
		fine("NIL", "X", "missing tag"),
		fine("NN", "NOUN", "noun, singular or mass"),
		fine("NNP", "PROPN", "noun, proper singular"),
		fine("NNPS", "PROPN", "noun, proper plural"),
		fine("NNS", "NOUN", "noun, plural"),
		fine("PDT", "DET", "predeterminer"),
		fine("POS", "PART", "possessive ending"),
		fine("PRP", "PRON", "pronoun, personal"),
		fine("PRP$", "PRON", "pronoun, possessive"),
		fine("RB", "ADV", "adverb"),
		fine("RBR", "ADV", "adverb, comparative"),
		fine("RBS", "ADV", "adverb, superlative"),
		fine("RP", "ADP", "adverb, particle"),
		fine("TO", "PART", `infinitival "to"`),
		fine("UH", "INTJ", "interjection"),
		fine("VB", "VERB", "verb, base form"),
		fine("VBD", "VERB", "verb, past tense"),
		fine("VBG", "VERB", "verb, gerund or present participle"),
		fine("VBN", "VERB", "verb, past participle"),
		fine("VBP", "VERB", "verb, non-3rd person singular present"),
		fine("VBZ", "VERB", "verb, 3rd person singular present"),
		fine("WDT", "DET", "wh-determiner"),
		fine("WP", "PRON", "wh-pronoun, personal"),
		fine("WP$", "PRON", "wh-pronoun, possessive"),
		fine("WRB", "ADV", "wh-adverb"),

		// OntoNotes 5 additions.
		fine("SP", "SPACE", "space"),
		fine("_SP", "SPACE", "whitespace"),
		fine("ADD", "X", "email"),
		fine("NFP", "PUNCT", "superfluous punctuation"),
		fine("GW", "X", "additional word in multi-word expression"),
		fine("XX", "X", "unknown"),
		fine("BES", "VERB", `auxiliary "be"`),
		fine("HVS", "VERB", `forms of "have"`),
	}
}
