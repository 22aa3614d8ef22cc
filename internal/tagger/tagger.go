package tagger

import (
	"context"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagset"
)

// Tagger splits text into tokens and assigns each a coarse and fine tag.
// Implementations wrap an external pre-trained model and must be safe for
// concurrent use.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]model.Token, error)
	TagBatch(ctx context.Context, texts []string) ([][]model.Token, error)
	Close() error
}

// Config holds provider settings. Providers ignore fields they do not use.
type Config struct {
	ModelDir   string // directory with model.onnx, vocab.txt, config.json
	ModelPath  string // explicit paths override ModelDir
	VocabPath  string
	LabelsPath string

	Endpoint string // remote tagging service base URL
	APIKey   string

	Tagset *tagset.Tagset // resolves coarse POS for fine labels
}
