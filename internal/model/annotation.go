package model

import "time"

// AnnotatedToken is a tagged token with explanations of both of its codes.
type AnnotatedToken struct {
	Token
	POSDescription string `json:"pos_description,omitempty"`
	TagDescription string `json:"tag_description,omitempty"`
}

// Annotation is glossa's output type: a document with its tagged, explained tokens.
type Annotation struct {
	DocumentID string           `json:"id"`
	Source     string           `json:"source,omitempty"`
	Text       string           `json:"text"`
	Timestamp  time.Time        `json:"timestamp"`
	Tokens     []AnnotatedToken `json:"tokens"`
}
