package search

import (
	"github.com/linknest/linknest-server/internal/domain"
)

// SearchDocument is the document structure for the Bleve index.
//
// Design note: tag slugs are denormalized into item documents so a tag
// filter is a single term query instead of a join against the store.
// The documents are rebuilt from the store on mapping changes, so the
// denormalization can never drift permanently.
type SearchDocument struct {
	// Identity
	ID     string `json:"id"`
	ListID string `json:"list_id"` // Owning list, for filtering

	// Searchable text
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`

	// Tag slugs for exact filtering and faceting
	Tags []string `json:"tags,omitempty"`

	// Completion state, stored as a keyword for filtering
	Completed bool `json:"completed"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"list_id":    d.ListID,
		"title":      d.Title,
		"completed":  d.Completed,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Location != "" {
		m["location"] = d.Location
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// ItemToSearchDocument converts a domain Item to a SearchDocument.
// Tag slugs must be provided by the caller, as the search package
// shouldn't depend on store.
func ItemToSearchDocument(item *domain.Item, tagSlugs []string) *SearchDocument {
	return &SearchDocument{
		ID:          item.ID,
		ListID:      item.ListID,
		Title:       item.Title,
		Description: item.Description,
		Location:    item.Location,
		Tags:        tagSlugs,
		Completed:   item.Completed,
		CreatedAt:   item.CreatedAt.UnixMilli(),
		UpdatedAt:   item.UpdatedAt.UnixMilli(),
	}
}
