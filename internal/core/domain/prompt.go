package domain

import "time"

// Document is a text-extracted attachment stored with a prompt. The raw file
// is discarded after extraction; only the plain text is kept.
type Document struct {
	Filename string `json:"filename" bson:"filename"`
	Text     string `json:"text" bson:"text"`
}

// Prompt is a reusable conversation context authored by a user. ID follows
// the P%03d display convention (P001, P002, ...).
type Prompt struct {
	ID         string     `json:"prompt_id" bson:"prompt_id"`
	OwnerCode  string     `json:"user_code" bson:"user_code"`
	Content    string     `json:"content" bson:"content"`
	Documents  []Document `json:"documents,omitempty" bson:"documents,omitempty"`
	TokenCount int        `json:"token_count" bson:"token_count"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}
