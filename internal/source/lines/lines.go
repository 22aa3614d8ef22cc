package lines

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/source"
)

const maxLineBytes = 1024 * 1024

func init() {
	source.Register("stdin", func(source.Config) (source.Source, error) {
		return New(os.Stdin, "stdin"), nil
	})
	source.Register("file", func(cfg source.Config) (source.Source, error) {
		return Open(cfg.Path)
	})
}

// Source emits one document per non-blank line of a reader.
type Source struct {
	r      io.Reader
	name   string
	closer io.Closer
	now    func() time.Time

	mu  sync.Mutex
	err error
}

// New creates a Source reading from r. name is recorded as each document's Source.
func New(r io.Reader, name string) *Source {
	return &Source{r: r, name: name, now: time.Now}
}

// Open creates a Source reading the file at path. The file is closed when
// the stream ends.
func Open(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("lines: file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lines: %w", err)
	}
	s := New(f, path)
	s.closer = f
	return s, nil
}

// Stream starts a goroutine that scans lines into documents.
func (s *Source) Stream(ctx context.Context) (<-chan model.Document, error) {
	ch := make(chan model.Document)
	go func() {
		defer close(ch)
		if s.closer != nil {
			defer s.closer.Close()
		}

		scanner := bufio.NewScanner(s.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			text := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}
			doc := model.Document{
				ID:        uuid.NewString(),
				Text:      text,
				Source:    s.name,
				Timestamp: s.now(),
			}
			select {
			case ch <- doc:
			case <-ctx.Done():
				s.setErr(ctx.Err())
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.setErr(fmt.Errorf("lines: read %s: %w", s.name, err))
		}
	}()
	return ch, nil
}

// Err returns the error that stopped the stream, if any.
func (s *Source) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Source) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// FromTexts creates a Source that emits each text as one document, in order.
// Blank texts are kept so callers get one annotation per argument.
func FromTexts(name string, texts ...string) source.Source {
	return &textsSource{name: name, texts: texts}
}

type textsSource struct {
	name  string
	texts []string

	mu  sync.Mutex
	err error
}

func (s *textsSource) Stream(ctx context.Context) (<-chan model.Document, error) {
	ch := make(chan model.Document)
	go func() {
		defer close(ch)
		for _, text := range s.texts {
			doc := model.Document{
				ID:        uuid.NewString(),
				Text:      text,
				Source:    s.name,
				Timestamp: time.Now(),
			}
			select {
			case ch <- doc:
			case <-ctx.Done():
				s.mu.Lock()
				s.err = ctx.Err()
				s.mu.Unlock()
				return
			}
		}
	}()
	return ch, nil
}

func (s *textsSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
