package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/output"
	"github.com/hejijunhao/glossa/internal/source"
)

const (
	defaultBatchSize     = 32
	defaultFlushInterval = 200 * time.Millisecond
)

// Processor turns documents into annotations. *engine.Engine satisfies it.
type Processor interface {
	Process(ctx context.Context, doc model.Document) (model.Annotation, error)
	ProcessBatch(ctx context.Context, docs []model.Document) ([]model.Annotation, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBatchSize sets how many documents are tagged together. Default: 32.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithFlushInterval sets how long a partial batch may wait for more
// documents. Default: 200ms. 0 waits until the batch is full or the source ends.
func WithFlushInterval(d time.Duration) Option {
	return func(p *Pipeline) { p.flushInterval = d }
}

// Pipeline connects a source, a processor, and an output.
type Pipeline struct {
	source        source.Source
	proc          Processor
	output        output.Output
	batchSize     int
	flushInterval time.Duration

	processed atomic.Int64
	skipped   atomic.Int64
}

// New creates a Pipeline from the given components.
func New(src source.Source, proc Processor, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:        src,
		proc:          proc,
		output:        out,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run streams documents from the source until it is exhausted or ctx is
// cancelled. Annotations are written in input order. Documents the processor
// rejects are logged and skipped; output errors stop the run.
func (p *Pipeline) Run(ctx context.Context) error {
	ch, err := p.source.Stream(ctx)
	if err != nil {
		return fmt.Errorf("pipeline stream: %w", err)
	}

	buf := newDocBuffer(p.flushInterval, p.batchSize)
	for {
		select {
		case <-ctx.Done():
			if n := buf.len(); n > 0 {
				slog.Warn("pipeline cancelled with pending documents", "pending", n)
			}
			return ctx.Err()
		case doc, ok := <-ch:
			if !ok {
				if err := p.flush(ctx, buf.take()); err != nil {
					return err
				}
				if err := p.source.Err(); err != nil {
					return fmt.Errorf("pipeline source: %w", err)
				}
				return nil
			}
			if buf.add(doc) {
				if err := p.flush(ctx, buf.take()); err != nil {
					return err
				}
			}
		case <-buf.flushCh():
			if err := p.flush(ctx, buf.take()); err != nil {
				return err
			}
		}
	}
}

// flush processes docs as one batch. If the batch fails, each document is
// retried alone so one bad document does not lose the rest.
func (p *Pipeline) flush(ctx context.Context, docs []model.Document) error {
	if len(docs) == 0 {
		return nil
	}

	anns, err := p.proc.ProcessBatch(ctx, docs)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("batch processing failed, falling back to per-document", "documents", len(docs), "error", err)
		anns = p.processEach(ctx, docs)
	}

	for _, ann := range anns {
		if err := p.output.Write(ctx, ann); err != nil {
			return fmt.Errorf("pipeline output: %w", err)
		}
	}
	p.processed.Add(int64(len(anns)))
	return nil
}

func (p *Pipeline) processEach(ctx context.Context, docs []model.Document) []model.Annotation {
	anns := make([]model.Annotation, 0, len(docs))
	for _, doc := range docs {
		ann, err := p.proc.Process(ctx, doc)
		if err != nil {
			p.skipped.Add(1)
			slog.Warn("skipping document", "id", doc.ID, "source", doc.Source, "error", err)
			continue
		}
		anns = append(anns, ann)
	}
	return anns
}

// Processed returns how many annotations were written.
func (p *Pipeline) Processed() int64 { return p.processed.Load() }

// Skipped returns how many documents were dropped after failing to process.
func (p *Pipeline) Skipped() int64 { return p.skipped.Load() }

// Close shuts down the output.
func (p *Pipeline) Close() error {
	if n := p.skipped.Load(); n > 0 {
		slog.Info("pipeline closed", "processed", p.processed.Load(), "skipped", n)
	}
	return p.output.Close()
}
