package tagger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownProvider is returned by Get for unregistered names.
var ErrUnknownProvider = errors.New("unknown tagger provider")

// Constructor creates a Tagger from cfg.
type Constructor func(cfg Config) (Tagger, error)

var (
	mu       sync.RWMutex
	registry = map[string]Constructor{}
)

// Register adds a tagger constructor under the given provider name.
func Register(name string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ctor
}

// Get returns the constructor for the given provider name.
func Get(name string) (Constructor, error) {
	mu.RLock()
	defer mu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return ctor, nil
}

// Providers returns the sorted names of all registered providers.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
