package model

// Token is a unit of text annotated by a tagger.
type Token struct {
	Text string `json:"text"`
	POS  string `json:"pos"` // coarse part of speech (NOUN, VERB, ...)
	Tag  string `json:"tag"` // fine-grained tag (NN, VBD, ...)
}
