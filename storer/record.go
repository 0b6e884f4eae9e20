package storer

import "time"

// Record is one ingested personal item. Text and Embedding are written once at
// creation and never updated in place; an edit is a delete plus a fresh insert,
// so Embedding is always the embedding of Text.
type Record struct {
	Id        string
	Owner     string
	Category  string
	SourceRef string
	Text      string
	Embedding []float32
	CreatedAt time.Time
}

// Match pairs a record with its cosine distance from the query vector.
// Smaller means more similar.
type Match struct {
	Record   Record
	Distance float32
}
