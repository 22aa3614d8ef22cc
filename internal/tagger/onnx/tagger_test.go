package onnx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagger"
	"github.com/hejijunhao/glossa/internal/tagset"
)

const testModelDir = "../../../models"

func skipWithoutModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(testModelDir, "model.onnx")); os.IsNotExist(err) {
		t.Skip("ONNX model not available, skipping integration test")
	}
}

func TestTokenMapping(t *testing.T) {
	tg := &Tagger{tags: tagset.Default()}
	tests := []struct {
		label string
		want  model.Token
	}{
		{"VBD", model.Token{Text: "w", POS: "VERB", Tag: "VBD"}},
		{"NNP", model.Token{Text: "w", POS: "PROPN", Tag: "NNP"}},
		{"NOUN", model.Token{Text: "w", POS: "NOUN", Tag: "NOUN"}},
		{"B-PER", model.Token{Text: "w", POS: "X", Tag: "B-PER"}},
	}
	for _, tt := range tests {
		if got := tg.token("w", tt.label); got != tt.want {
			t.Errorf("token(%q) = %+v, want %+v", tt.label, got, tt.want)
		}
	}
}

func TestResolvePaths(t *testing.T) {
	m, v, l := ResolvePaths(tagger.Config{ModelDir: "/data/pos"})
	if m != "/data/pos/model.onnx" || v != "/data/pos/vocab.txt" || l != "/data/pos/config.json" {
		t.Errorf("dir paths = %s, %s, %s", m, v, l)
	}

	m, v, l = ResolvePaths(tagger.Config{ModelPath: "/a/m.onnx", VocabPath: "/a/v.txt", LabelsPath: "/a/c.json"})
	if m != "/a/m.onnx" || v != "/a/v.txt" || l != "/a/c.json" {
		t.Errorf("explicit paths not preserved: %s, %s, %s", m, v, l)
	}

	m, _, _ = ResolvePaths(tagger.Config{})
	if m != "models/model.onnx" {
		t.Errorf("default model path = %q", m)
	}
}

func TestNewBadPathReturnsError(t *testing.T) {
	_, err := New("/nonexistent/model.onnx", "/nonexistent/vocab.txt", "/nonexistent/config.json", nil)
	if err == nil {
		t.Fatal("expected error for bad model path")
	}
}

func TestRegistered(t *testing.T) {
	if _, err := tagger.Get("onnx"); err != nil {
		t.Fatalf("onnx provider not registered: %v", err)
	}
}

func TestTagSentence(t *testing.T) {
	skipWithoutModel(t)

	m, v, l := ResolvePaths(tagger.Config{ModelDir: testModelDir})
	tg, err := New(m, v, l, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tg.Close()

	toks, err := tg.Tag(context.Background(), "The quick brown fox jumped over the lazy dog.")
	if err != nil {
		t.Fatalf("Tag() error: %v", err)
	}
	if len(toks) != 10 {
		t.Fatalf("got %d tokens, want 10", len(toks))
	}
	if toks[0].Text != "The" || toks[0].Tag != "DT" {
		t.Errorf("token 0 = %+v, want The/DT", toks[0])
	}
	if toks[4].Text != "jumped" || toks[4].Tag != "VBD" {
		t.Errorf("token 4 = %+v, want jumped/VBD", toks[4])
	}
}

func TestTagBatchEmptyAndCancelled(t *testing.T) {
	skipWithoutModel(t)

	m, v, l := ResolvePaths(tagger.Config{ModelDir: testModelDir})
	tg, err := New(m, v, l, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer tg.Close()

	out, err := tg.TagBatch(context.Background(), []string{"", "Hello there."})
	if err != nil {
		t.Fatalf("TagBatch() error: %v", err)
	}
	if len(out) != 2 || len(out[0]) != 0 || len(out[1]) == 0 {
		t.Errorf("unexpected batch shape: %v", out)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tg.TagBatch(ctx, []string{"Hello"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
