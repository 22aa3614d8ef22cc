package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hejijunhao/glossa/internal/model"
)

type mockOutput struct {
	mu     sync.Mutex
	anns   []model.Annotation
	closed bool
	err    error         // returned from Write when set
	delay  time.Duration // Write sleeps first when >0
}

func (m *mockOutput) Write(_ context.Context, ann model.Annotation) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	m.anns = append(m.anns, ann)
	m.mu.Unlock()
	return m.err
}

func (m *mockOutput) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *mockOutput) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.anns)
}

func testAnnotation(id string) model.Annotation {
	return model.Annotation{DocumentID: id, Text: "hi"}
}

func TestAnnotationsFlowThroughInOrder(t *testing.T) {
	inner := &mockOutput{}
	a := New(inner, WithBufferSize(16))

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		if err := a.Write(context.Background(), testAnnotation(id)); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if inner.count() != len(ids) {
		t.Fatalf("got %d annotations, want %d", inner.count(), len(ids))
	}
	for i, id := range ids {
		if inner.anns[i].DocumentID != id {
			t.Errorf("anns[%d] = %q, want %q", i, inner.anns[i].DocumentID, id)
		}
	}
	if !inner.closed {
		t.Error("inner output not closed")
	}
}

func TestBackpressureBlocks(t *testing.T) {
	inner := &mockOutput{delay: 50 * time.Millisecond}
	a := New(inner, WithBufferSize(1))

	a.Write(context.Background(), testAnnotation("first"))

	done := make(chan struct{})
	go func() {
		a.Write(context.Background(), testAnnotation("second"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Write blocked indefinitely (expected eventual unblock via drain)")
	}
	a.Close()
}

func TestWriteHonorsContextWhenFull(t *testing.T) {
	inner := &mockOutput{delay: time.Second}
	a := New(inner, WithBufferSize(1), WithDrainTimeout(10*time.Millisecond))
	defer a.Close()

	// One in flight inside the slow inner output, one in the buffer.
	a.Write(context.Background(), testAnnotation("1"))
	time.Sleep(20 * time.Millisecond)
	a.Write(context.Background(), testAnnotation("2"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := a.Write(ctx, testAnnotation("3")); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Write on full buffer = %v, want deadline exceeded", err)
	}
}

func TestDropOnFull(t *testing.T) {
	inner := &mockOutput{delay: 100 * time.Millisecond}
	a := New(inner, WithBufferSize(1), WithDropOnFull())

	for i := 0; i < 20; i++ {
		if err := a.Write(context.Background(), testAnnotation("burst")); err != nil {
			t.Fatalf("Write error in drop mode: %v", err)
		}
	}
	a.Close()

	if inner.count() == 20 {
		t.Error("expected some annotations to be dropped in drop-on-full mode")
	}
	if inner.count() == 0 {
		t.Error("expected at least some annotations to be delivered")
	}
}

func TestCloseDrainsRemaining(t *testing.T) {
	inner := &mockOutput{}
	a := New(inner, WithBufferSize(100))

	for i := 0; i < 50; i++ {
		a.Write(context.Background(), testAnnotation("drain"))
	}
	a.Close()

	if inner.count() != 50 {
		t.Errorf("after Close, got %d annotations, want 50", inner.count())
	}
}

func TestErrorCallbackInvoked(t *testing.T) {
	inner := &mockOutput{err: errors.New("write failed")}
	var errorCount atomic.Int64
	a := New(inner, WithBufferSize(16), WithOnError(func(error) { errorCount.Add(1) }))

	for i := 0; i < 5; i++ {
		a.Write(context.Background(), testAnnotation("failing"))
	}
	a.Close()

	if errorCount.Load() != 5 {
		t.Errorf("error callback called %d times, want 5", errorCount.Load())
	}
}

func TestCloseIdempotent(t *testing.T) {
	a := New(&mockOutput{}, WithBufferSize(16))
	a.Write(context.Background(), testAnnotation("once"))

	if err := a.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
	select {
	case <-a.done:
	default:
		t.Fatal("drain goroutine did not exit after Close")
	}
}
