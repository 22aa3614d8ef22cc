package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hejijunhao/glossa/internal/engine/dedup"
	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagger"
	"github.com/hejijunhao/glossa/internal/tagset"
)

// Engine orchestrates the tag → explain pipeline.
type Engine struct {
	tagger tagger.Tagger
	tags   *tagset.Tagset
}

// New creates an Engine. A nil tagset selects the built-in table.
func New(tg tagger.Tagger, tags *tagset.Tagset) *Engine {
	if tags == nil {
		tags = tagset.Default()
	}
	return &Engine{tagger: tg, tags: tags}
}

// Tagset returns the table used for explanations.
func (e *Engine) Tagset() *tagset.Tagset {
	return e.tags
}

// Process tags a single document and explains every token.
// Blank text yields an annotation without tokens and never reaches the tagger.
func (e *Engine) Process(ctx context.Context, doc model.Document) (model.Annotation, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return e.annotate(doc, nil), nil
	}
	toks, err := e.tagger.Tag(ctx, doc.Text)
	if err != nil {
		return model.Annotation{}, fmt.Errorf("engine: tag %s: %w", doc.ID, err)
	}
	return e.annotate(doc, toks), nil
}

// ProcessBatch tags documents with a single TagBatch call. Repeated texts are
// sent to the tagger once. Output order matches input order.
func (e *Engine) ProcessBatch(ctx context.Context, docs []model.Document) ([]model.Annotation, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(docs))
	idx := make([]int, 0, len(docs))
	for i, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		texts = append(texts, d.Text)
		idx = append(idx, i)
	}

	tagged := make([][]model.Token, len(docs))
	batch := dedup.Collapse(texts)
	if len(batch.Unique) > 0 {
		out, err := e.tagger.TagBatch(ctx, batch.Unique)
		if err != nil {
			return nil, fmt.Errorf("engine: tag batch of %d: %w", len(batch.Unique), err)
		}
		if len(out) != len(batch.Unique) {
			return nil, fmt.Errorf("engine: tagger returned %d results for %d texts", len(out), len(batch.Unique))
		}
		for j, toks := range dedup.Expand(batch, out) {
			tagged[idx[j]] = toks
		}
	}

	annotations := make([]model.Annotation, len(docs))
	for i, d := range docs {
		annotations[i] = e.annotate(d, tagged[i])
	}
	slog.Debug("processed batch", "documents", len(docs), "tagged", len(batch.Unique), "duplicates", batch.Duplicates())
	return annotations, nil
}

// Explain returns the description of a tag code; see tagset.Tagset.Explain.
func (e *Engine) Explain(code string) (string, error) {
	return e.tags.Explain(code)
}

func (e *Engine) annotate(doc model.Document, toks []model.Token) model.Annotation {
	annotated := make([]model.AnnotatedToken, len(toks))
	for i, tok := range toks {
		annotated[i] = model.AnnotatedToken{
			Token:          tok,
			POSDescription: e.describe(tok.POS),
			TagDescription: e.describe(tok.Tag),
		}
	}
	return model.Annotation{
		DocumentID: doc.ID,
		Source:     doc.Source,
		Text:       doc.Text,
		Timestamp:  doc.Timestamp,
		Tokens:     annotated,
	}
}

// describe explains a code produced by the tagger. Taggers may leave a field
// empty; that is reported as having no description rather than as an error.
func (e *Engine) describe(code string) string {
	if code == "" {
		return tagset.NoDescription
	}
	desc, err := e.tags.Explain(code)
	if err != nil {
		return tagset.NoDescription
	}
	return desc
}
