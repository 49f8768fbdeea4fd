package domain

import "time"

// Tag is a global label shared by items across all lists.
// Slug is the source of truth for identity; Name preserves the casing
// the tag was first created with, for display.
type Tag struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // Canonical form: lowercase, hyphenated
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// TagSummary is a tag together with its derived usage count.
// The count is computed from the tag-to-item index at read time,
// never stored alongside the tag.
type TagSummary struct {
	Tag
	ItemCount int `json:"item_count"`
}
