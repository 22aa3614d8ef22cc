package onnx

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// modelConfig is the subset of a Hugging Face config.json used here.
type modelConfig struct {
	ID2Label map[string]string `json:"id2label"`
}

// tokenizerConfig is the subset of tokenizer_config.json used here.
type tokenizerConfig struct {
	DoLowerCase *bool `json:"do_lower_case"`
}

// loadLabels reads id2label from config.json and returns labels indexed by ID.
// IDs must be contiguous from 0.
func loadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	var cfg modelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("labels: failed to parse %s: %w", path, err)
	}
	if len(cfg.ID2Label) == 0 {
		return nil, fmt.Errorf("labels: %s has no id2label", path)
	}

	labels := make([]string, len(cfg.ID2Label))
	for key, label := range cfg.ID2Label {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("labels: non-numeric id %q", key)
		}
		if id < 0 || id >= len(labels) {
			return nil, fmt.Errorf("labels: id %d out of range [0,%d)", id, len(labels))
		}
		if label == "" {
			return nil, fmt.Errorf("labels: id %d has empty label", id)
		}
		labels[id] = label
	}
	return labels, nil
}

// loadLowercase reports whether the vocabulary expects lowercased input,
// reading tokenizer_config.json from dir. Uncased is the default when the
// file or the key is absent.
func loadLowercase(dir string) (bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, "tokenizer_config.json"))
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("tokenizer config: %w", err)
	}
	var cfg tokenizerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return false, fmt.Errorf("tokenizer config: %w", err)
	}
	if cfg.DoLowerCase == nil {
		return true, nil
	}
	return *cfg.DoLowerCase, nil
}
