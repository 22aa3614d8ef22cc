package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hejijunhao/glossa/internal/model"
)

// ErrUnknownSource is returned by Get for unregistered names.
var ErrUnknownSource = errors.New("unknown source")

// Source produces documents for the pipeline.
type Source interface {
	// Stream starts producing documents. The channel is closed when the
	// source is exhausted, fails, or ctx is cancelled.
	Stream(ctx context.Context) (<-chan model.Document, error)

	// Err reports the error that stopped the stream, if any. Valid once the
	// channel returned by Stream is closed.
	Err() error
}

// Config holds source settings.
type Config struct {
	Path string // file path for file-backed sources
}

// Constructor creates a Source from cfg.
type Constructor func(cfg Config) (Source, error)

var (
	mu       sync.RWMutex
	registry = map[string]Constructor{}
)

// Register adds a source constructor under the given name.
func Register(name string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ctor
}

// Get returns the constructor registered under name.
func Get(name string) (Constructor, error) {
	mu.RLock()
	defer mu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return ctor, nil
}

// Names returns the sorted names of all registered sources.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
