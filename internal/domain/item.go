package domain

import (
	"slices"
	"time"
)

// Item represents a single saved entry inside a list: a link, a place,
// a book, anything with a title. Only Title and ListID are required.
// Tags are referenced by ID; the tag itself is a global entity.
type Item struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	ListID       string    `json:"list_id"` // Owning list, immutable after creation
	Title        string    `json:"title"`
	URL          string    `json:"url,omitempty"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"` // Free-form address or "lat,lng"
	PreviewImage string    `json:"preview_image,omitempty"`
	TagIDs       []string  `json:"tag_ids"`
	Completed    bool      `json:"completed"` // Visited / read / watched
}

// Touch updates the UpdatedAt timestamp.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now()
}

// HasTag checks whether the item carries the given tag.
func (i *Item) HasTag(tagID string) bool {
	return slices.Contains(i.TagIDs, tagID)
}

// AddTag attaches a tag ID if not already present.
func (i *Item) AddTag(tagID string) bool {
	if slices.Contains(i.TagIDs, tagID) {
		return false // Already present
	}
	i.TagIDs = append(i.TagIDs, tagID)
	return true
}

// RemoveTag detaches a tag ID from the item.
func (i *Item) RemoveTag(tagID string) bool {
	for idx, id := range i.TagIDs {
		if id == tagID {
			i.TagIDs = append(i.TagIDs[:idx], i.TagIDs[idx+1:]...)
			return true
		}
	}
	return false
}
