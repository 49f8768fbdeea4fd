// Package domain contains the core entities for organizing links into lists.
package domain

import "time"

// List represents a named collection of saved items, like "Places to Eat"
// or "Books to Read". Lists own their items: deleting a list removes
// every item that belongs to it.
type List struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon,omitempty"`          // Optional emoji or short glyph
	PreviewImage string    `json:"preview_image,omitempty"` // Optional cover image URL
}

// Touch updates the UpdatedAt timestamp. Called whenever the list itself
// changes or an item inside it is created, updated, or deleted.
func (l *List) Touch() {
	l.UpdatedAt = time.Now()
}

// ListSummary is a list together with its derived item count.
// The count is never stored; it is computed from the item index at read time.
type ListSummary struct {
	List
	ItemCount int `json:"item_count"`
}
