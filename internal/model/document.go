package model

import "time"

// Document is a unit of input text produced by a source and consumed by the engine.
type Document struct {
	ID        string
	Text      string
	Source    string // origin name (e.g. "stdin", a file path)
	Timestamp time.Time
}
