package multi

import (
	"context"
	"errors"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/output"
)

// Multi fans out annotations to several outputs. A failing output does not
// stop delivery to the ones after it.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi over the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers ann to every wrapped output and joins their errors.
func (m *Multi) Write(ctx context.Context, ann model.Annotation) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, ann); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every wrapped output and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
