package onnx

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagger"
	"github.com/hejijunhao/glossa/internal/tagset"
)

func init() {
	tagger.Register("onnx", func(cfg tagger.Config) (tagger.Tagger, error) {
		modelPath, vocabPath, labelsPath := ResolvePaths(cfg)
		return New(modelPath, vocabPath, labelsPath, cfg.Tagset)
	})
}

// Tagger runs a pre-trained token-classification model through ONNX Runtime.
// The pipeline is: split words → WordPiece → inference → argmax at each
// word's first subword → label → coarse/fine tags.
type Tagger struct {
	session *session
	tok     *tokenizer
	labels  []string
	tags    *tagset.Tagset
}

// New loads the model, vocabulary, and label map. tags resolves the coarse
// POS of fine labels; nil selects the built-in table.
func New(modelPath, vocabPath, labelsPath string, tags *tagset.Tagset) (*Tagger, error) {
	if tags == nil {
		tags = tagset.Default()
	}

	labels, err := loadLabels(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("onnx tagger: %w", err)
	}

	lowercase, err := loadLowercase(filepath.Dir(vocabPath))
	if err != nil {
		return nil, fmt.Errorf("onnx tagger: %w", err)
	}
	tok, err := newTokenizer(vocabPath, lowercase)
	if err != nil {
		return nil, fmt.Errorf("onnx tagger: %w", err)
	}

	sess, err := newSession(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx tagger: %w", err)
	}
	if int(sess.numLabels) != len(labels) {
		sess.close()
		return nil, fmt.Errorf("onnx tagger: model has %d output labels, config has %d",
			sess.numLabels, len(labels))
	}

	return &Tagger{session: sess, tok: tok, labels: labels, tags: tags}, nil
}

// ResolvePaths returns the model, vocab, and label-config paths from cfg.
// Explicit paths take precedence over ModelDir, which defaults to "models".
func ResolvePaths(cfg tagger.Config) (modelPath, vocabPath, labelsPath string) {
	if cfg.ModelPath != "" {
		return cfg.ModelPath, cfg.VocabPath, cfg.LabelsPath
	}
	dir := cfg.ModelDir
	if dir == "" {
		dir = "models"
	}
	return filepath.Join(dir, "model.onnx"),
		filepath.Join(dir, "vocab.txt"),
		filepath.Join(dir, "config.json")
}

// Tag tags a single text.
func (t *Tagger) Tag(ctx context.Context, text string) ([]model.Token, error) {
	out, err := t.TagBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// TagBatch tags several texts with a single inference call. Texts longer than
// one model sequence are spread over several rows of the batch.
func (t *Tagger) TagBatch(ctx context.Context, texts []string) ([][]model.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([][]model.Token, len(texts))

	var segs []segment
	var owner []int
	for i, text := range texts {
		for _, s := range t.tok.segments(text) {
			segs = append(segs, s)
			owner = append(owner, i)
		}
	}
	if len(segs) == 0 {
		return results, nil
	}

	batch := t.tok.pack(segs)
	logits, err := t.session.infer(batch)
	if err != nil {
		return nil, fmt.Errorf("onnx tagger: %w", err)
	}

	for b, seg := range segs {
		ids := decodeSegment(logits, b, seg, batch.seqLen, t.session.numLabels)
		for i, id := range ids {
			results[owner[b]] = append(results[owner[b]], t.token(seg.words[i], t.labels[id]))
		}
	}
	return results, nil
}

// token builds a Token from a predicted label. Fine labels take their coarse
// POS from the tag table; POS labels fill both fields; anything else is kept
// as the fine tag with coarse X.
func (t *Tagger) token(word, label string) model.Token {
	if coarse, ok := t.tags.CoarseOf(label); ok {
		return model.Token{Text: word, POS: coarse, Tag: label}
	}
	if e, ok := t.tags.Lookup(label); ok && e.Category == model.POS {
		return model.Token{Text: word, POS: label, Tag: label}
	}
	return model.Token{Text: word, POS: "X", Tag: label}
}

// Close releases ONNX Runtime resources.
func (t *Tagger) Close() error {
	if t.session != nil {
		return t.session.close()
	}
	return nil
}
