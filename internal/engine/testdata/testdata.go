package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// GoldToken is one token of a hand-tagged sentence.
type GoldToken struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// CorpusEntry is a sentence with its reference Penn Treebank tags.
type CorpusEntry struct {
	Text   string      `json:"text"`
	Tokens []GoldToken `json:"tokens"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
