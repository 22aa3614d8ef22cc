package pipeline

import (
	"sync"
	"time"

	"github.com/hejijunhao/glossa/internal/model"
)

// docBuffer accumulates documents until maxSize is reached or window
// elapses after the first one arrived.
type docBuffer struct {
	window  time.Duration
	maxSize int // 0 means unlimited

	mu      sync.Mutex
	pending []model.Document
	timer   *time.Timer
}

func newDocBuffer(window time.Duration, maxSize int) *docBuffer {
	return &docBuffer{window: window, maxSize: maxSize}
}

// add appends doc and starts the flush timer on the first document.
// Returns true when the buffer is full.
func (b *docBuffer) add(doc model.Document) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, doc)
	if len(b.pending) == 1 && b.window > 0 {
		b.timer = time.NewTimer(b.window)
	}
	return b.maxSize > 0 && len(b.pending) >= b.maxSize
}

// flushCh returns the timer's channel, or nil if no timer is active.
func (b *docBuffer) flushCh() <-chan time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer == nil {
		return nil
	}
	return b.timer.C
}

// take empties the buffer and returns what it held.
func (b *docBuffer) take() []model.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	docs := b.pending
	b.pending = nil
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	return docs
}

func (b *docBuffer) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
