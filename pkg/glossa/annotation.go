package glossa

import (
	"context"
	"time"

	"github.com/hejijunhao/glossa/internal/model"
)

// Token is one tagged word with its explanations.
type Token struct {
	Text           string `json:"text"`
	POS            string `json:"pos"`                       // universal POS, e.g. "VERB"
	Tag            string `json:"tag"`                       // fine tag, e.g. "VBD"
	POSDescription string `json:"pos_description,omitempty"` // e.g. "verb"
	TagDescription string `json:"tag_description,omitempty"` // e.g. "verb, past tense"
}

// Annotation is a tagged and explained text.
// This is the stable public type; internal representations may evolve
// independently.
type Annotation struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Tokens    []Token   `json:"tokens"`
}

// Tagger is a custom tagging backend for WithTagger. Only Text, POS and Tag
// of the returned tokens are used; descriptions are filled in by glossa.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}

// customTagger adapts a public Tagger to the internal interface.
type customTagger struct {
	t Tagger
}

func (c customTagger) Tag(ctx context.Context, text string) ([]model.Token, error) {
	toks, err := c.t.Tag(ctx, text)
	if err != nil {
		return nil, err
	}
	out := make([]model.Token, len(toks))
	for i, tok := range toks {
		out[i] = model.Token{Text: tok.Text, POS: tok.POS, Tag: tok.Tag}
	}
	return out, nil
}

func (c customTagger) TagBatch(ctx context.Context, texts []string) ([][]model.Token, error) {
	out := make([][]model.Token, len(texts))
	for i, text := range texts {
		toks, err := c.Tag(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = toks
	}
	return out, nil
}

func (c customTagger) Close() error { return nil }

func annotationFromModel(a model.Annotation) Annotation {
	toks := make([]Token, len(a.Tokens))
	for i, t := range a.Tokens {
		toks[i] = Token{
			Text:           t.Text,
			POS:            t.POS,
			Tag:            t.Tag,
			POSDescription: t.POSDescription,
			TagDescription: t.TagDescription,
		}
	}
	return Annotation{Text: a.Text, Timestamp: a.Timestamp, Tokens: toks}
}
