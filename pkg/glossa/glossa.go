package glossa

import (
	"context"
	"fmt"
	"time"

	"github.com/hejijunhao/glossa/internal/engine"
	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagger"
	"github.com/hejijunhao/glossa/internal/tagset"

	_ "github.com/hejijunhao/glossa/internal/tagger/onnx"
	_ "github.com/hejijunhao/glossa/internal/tagger/remote"
)

// Glossa tags text and explains the resulting codes. Safe for concurrent use.
type Glossa struct {
	engine *engine.Engine
	tagger tagger.Tagger
	tags   *tagset.Tagset
}

// New creates a Glossa instance. Loading a local model is expensive; create
// once, reuse across requests.
func New(opts ...Option) (*Glossa, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tags := tagset.Default()
	if o.tagsetFile != "" {
		t, err := tagset.Load(o.tagsetFile)
		if err != nil {
			return nil, fmt.Errorf("glossa: %w", err)
		}
		tags = t
	}

	var tg tagger.Tagger
	if o.custom != nil {
		tg = customTagger{t: o.custom}
	} else {
		ctor, err := tagger.Get(o.provider)
		if err != nil {
			return nil, fmt.Errorf("glossa: %w", err)
		}
		tg, err = ctor(tagger.Config{
			ModelDir:   o.modelDir,
			ModelPath:  o.modelPath,
			VocabPath:  o.vocabPath,
			LabelsPath: o.labelsPath,
			Endpoint:   o.endpoint,
			APIKey:     o.apiKey,
			Tagset:     tags,
		})
		if err != nil {
			return nil, fmt.Errorf("glossa: %w", err)
		}
	}

	return &Glossa{engine: engine.New(tg, tags), tagger: tg, tags: tags}, nil
}

// Annotate tags text and explains every token.
func (g *Glossa) Annotate(ctx context.Context, text string) (Annotation, error) {
	ann, err := g.engine.Process(ctx, model.Document{Text: text, Timestamp: time.Now()})
	if err != nil {
		return Annotation{}, err
	}
	return annotationFromModel(ann), nil
}

// AnnotateBatch tags several texts in one batched call. More efficient than
// calling Annotate in a loop.
func (g *Glossa) AnnotateBatch(ctx context.Context, texts []string) ([]Annotation, error) {
	now := time.Now()
	docs := make([]model.Document, len(texts))
	for i, t := range texts {
		docs[i] = model.Document{Text: t, Timestamp: now}
	}
	anns, err := g.engine.ProcessBatch(ctx, docs)
	if err != nil {
		return nil, err
	}
	out := make([]Annotation, len(anns))
	for i, a := range anns {
		out[i] = annotationFromModel(a)
	}
	return out, nil
}

// Explain returns the description of code from this instance's table.
func (g *Glossa) Explain(code string) (string, error) {
	return g.tags.Explain(code)
}

// Lookup returns this instance's entry for code.
func (g *Glossa) Lookup(code string) (TagInfo, bool) {
	return lookup(g.tags, code)
}

// Tags lists this instance's table, optionally filtered by category.
func (g *Glossa) Tags(categories ...Category) []TagInfo {
	return list(g.tags, categories)
}

// Close releases tagger resources.
func (g *Glossa) Close() error {
	return g.tagger.Close()
}
