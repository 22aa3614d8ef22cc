package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/output"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback for inner Write failures.
// Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Write drop the annotation instead of blocking when the
// buffer is full.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// WithDrainTimeout bounds how long Close waits for buffered annotations.
// Default: 5s.
func WithDrainTimeout(d time.Duration) Option {
	return func(a *Async) { a.drainTimeout = d }
}

// Async moves writes to a background goroutine through a buffered channel.
// Inner write errors go to errFunc, not to the caller.
type Async struct {
	inner        output.Output
	ch           chan model.Annotation
	done         chan struct{}
	errFunc      func(error)
	bufSize      int
	dropOnFull   bool
	drainTimeout time.Duration
	closeOnce    sync.Once
}

// New wraps inner and starts the drain goroutine.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:        inner,
		bufSize:      defaultBufferSize,
		drainTimeout: defaultDrainTimeout,
		errFunc:      func(err error) { slog.Warn("async output write error", "error", err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan model.Annotation, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write queues ann. It blocks while the buffer is full unless
// WithDropOnFull is set, or until ctx is cancelled.
func (a *Async) Write(ctx context.Context, ann model.Annotation) error {
	if a.dropOnFull {
		select {
		case a.ch <- ann:
		default:
			slog.Warn("async output buffer full, dropping annotation", "id", ann.DocumentID)
		}
		return nil
	}
	select {
	case a.ch <- ann:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting writes, waits for the drain (bounded by the drain
// timeout) and closes the inner output. Safe to call more than once.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(a.drainTimeout):
			slog.Warn("async output drain timed out", "pending", len(a.ch))
		}
		err = a.inner.Close()
	})
	return err
}

func (a *Async) drain() {
	defer close(a.done)
	for ann := range a.ch {
		if err := a.inner.Write(context.Background(), ann); err != nil {
			a.errFunc(err)
		}
	}
}
