package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hejijunhao/glossa/internal/model"
)

// --- mocks ---

// mockSource emits docs then closes, reporting err from Err.
type mockSource struct {
	docs []model.Document
	err  error
	hold bool // keep the channel open after sending docs
}

func (m *mockSource) Stream(ctx context.Context) (<-chan model.Document, error) {
	ch := make(chan model.Document, len(m.docs))
	for _, d := range m.docs {
		ch <- d
	}
	if !m.hold {
		close(ch)
	}
	return ch, nil
}

func (m *mockSource) Err() error { return m.err }

// mockProcessor echoes each document's text; documents whose text is failOn
// fail, and so does any batch that contains one.
type mockProcessor struct {
	failOn string

	mu      sync.Mutex
	batches []int
}

func (m *mockProcessor) Process(_ context.Context, doc model.Document) (model.Annotation, error) {
	if doc.Text == m.failOn {
		return model.Annotation{}, fmt.Errorf("mock: cannot process %q", doc.Text)
	}
	return model.Annotation{DocumentID: doc.ID, Text: doc.Text}, nil
}

func (m *mockProcessor) ProcessBatch(ctx context.Context, docs []model.Document) ([]model.Annotation, error) {
	m.mu.Lock()
	m.batches = append(m.batches, len(docs))
	m.mu.Unlock()
	anns := make([]model.Annotation, 0, len(docs))
	for _, d := range docs {
		ann, err := m.Process(ctx, d)
		if err != nil {
			return nil, err
		}
		anns = append(anns, ann)
	}
	return anns, nil
}

func (m *mockProcessor) batchSizes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.batches...)
}

type mockOutput struct {
	mu     sync.Mutex
	anns   []model.Annotation
	err    error
	closed bool
}

func (m *mockOutput) Write(_ context.Context, ann model.Annotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.anns = append(m.anns, ann)
	return nil
}

func (m *mockOutput) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *mockOutput) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, a := range m.anns {
		out = append(out, a.Text)
	}
	return out
}

func docs(texts ...string) []model.Document {
	out := make([]model.Document, len(texts))
	for i, t := range texts {
		out[i] = model.Document{ID: fmt.Sprintf("doc-%d", i), Text: t, Source: "test"}
	}
	return out
}

// --- tests ---

func TestRunWritesAllInOrder(t *testing.T) {
	src := &mockSource{docs: docs("a", "b", "c", "d", "e")}
	proc := &mockProcessor{}
	out := &mockOutput{}

	p := New(src, proc, out, WithBatchSize(2))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if got := strings.Join(out.texts(), ""); got != "abcde" {
		t.Errorf("output order = %q, want abcde", got)
	}
	if got := proc.batchSizes(); fmt.Sprint(got) != "[2 2 1]" {
		t.Errorf("batch sizes = %v, want [2 2 1]", got)
	}
	if p.Processed() != 5 {
		t.Errorf("Processed = %d, want 5", p.Processed())
	}
}

func TestRunEmptySource(t *testing.T) {
	out := &mockOutput{}
	p := New(&mockSource{}, &mockProcessor{}, out)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(out.texts()) != 0 {
		t.Errorf("expected no annotations, got %d", len(out.texts()))
	}
}

func TestRunReturnsSourceError(t *testing.T) {
	srcErr := errors.New("read failed")
	src := &mockSource{docs: docs("a"), err: srcErr}
	out := &mockOutput{}

	err := New(src, &mockProcessor{}, out).Run(context.Background())
	if !errors.Is(err, srcErr) {
		t.Fatalf("Run error = %v, want wrapped %v", err, srcErr)
	}
	// Documents read before the failure are still written.
	if len(out.texts()) != 1 {
		t.Errorf("got %d annotations, want 1", len(out.texts()))
	}
}

func TestRunBatchFallbackSkipsBadDocument(t *testing.T) {
	src := &mockSource{docs: docs("good 1", "BAD", "good 2")}
	out := &mockOutput{}

	p := New(src, &mockProcessor{failOn: "BAD"}, out, WithBatchSize(10))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	got := out.texts()
	if len(got) != 2 || got[0] != "good 1" || got[1] != "good 2" {
		t.Fatalf("annotations = %v, want [good 1 good 2]", got)
	}
	if p.Skipped() != 1 {
		t.Errorf("Skipped = %d, want 1", p.Skipped())
	}
}

func TestSkipCounter(t *testing.T) {
	src := &mockSource{docs: docs("good", "BAD", "BAD", "BAD", "good")}
	out := &mockOutput{}

	p := New(src, &mockProcessor{failOn: "BAD"}, out, WithBatchSize(1))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Skipped() != 3 {
		t.Fatalf("Skipped = %d, want 3", p.Skipped())
	}
	if len(out.texts()) != 2 {
		t.Fatalf("got %d annotations, want 2", len(out.texts()))
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !out.closed {
		t.Error("Close did not close the output")
	}
}

func TestRunStopsOnOutputError(t *testing.T) {
	outErr := errors.New("disk full")
	out := &mockOutput{err: outErr}

	err := New(&mockSource{docs: docs("a")}, &mockProcessor{}, out).Run(context.Background())
	if !errors.Is(err, outErr) {
		t.Fatalf("Run error = %v, want wrapped %v", err, outErr)
	}
}

func TestRunFlushesPartialBatchOnInterval(t *testing.T) {
	src := &mockSource{docs: docs("a", "b"), hold: true}
	out := &mockOutput{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(src, &mockProcessor{}, out, WithBatchSize(100), WithFlushInterval(20*time.Millisecond))
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for len(out.texts()) < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if len(out.texts()) != 2 {
		t.Fatalf("partial batch not flushed by interval: got %d annotations", len(out.texts()))
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run after cancel = %v, want context.Canceled", err)
	}
}

func TestRunCancelled(t *testing.T) {
	src := &mockSource{hold: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(src, &mockProcessor{}, &mockOutput{}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestDocBufferMaxSize(t *testing.T) {
	b := newDocBuffer(time.Second, 3)
	for i, d := range docs("a", "b", "c") {
		full := b.add(d)
		if want := i == 2; full != want {
			t.Errorf("add #%d full = %v, want %v", i, full, want)
		}
	}
	if got := b.take(); len(got) != 3 {
		t.Fatalf("take returned %d docs, want 3", len(got))
	}
	if b.flushCh() != nil {
		t.Error("timer should be cleared after take")
	}
	if b.len() != 0 {
		t.Errorf("len after take = %d, want 0", b.len())
	}
}

func TestDocBufferTimerStartsOnFirstAdd(t *testing.T) {
	b := newDocBuffer(10*time.Millisecond, 0)
	if b.flushCh() != nil {
		t.Fatal("empty buffer should have no timer")
	}
	b.add(model.Document{Text: "x"})
	select {
	case <-b.flushCh():
	case <-time.After(time.Second):
		t.Fatal("flush timer did not fire")
	}
}
