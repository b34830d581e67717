package domain

import "time"

// FAQRecord is a catalog entry owned by the FAQ catalog; the pipeline reads
// it but never mutates it.
type FAQRecord struct {
	ID        string
	Question  string
	Answer    string
	Category  string
	Keywords  []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScoredFAQ pairs a record with its relevance score for one ranking call.
type ScoredFAQ struct {
	Record FAQRecord
	Score  float64
}
