package output

import (
	"context"

	"github.com/hejijunhao/glossa/internal/model"
)

// Output defines the interface for annotation destinations.
type Output interface {
	Write(ctx context.Context, ann model.Annotation) error
	Close() error
}
