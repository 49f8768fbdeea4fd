package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/id"
)

// Key prefixes for global tag storage.
// Tags are shared across all lists, there is no per-list scoping.
const (
	tagPrefix       = "tag:"           // tag:{id} → Tag JSON
	tagBySlugPrefix = "idx:tags:slug:" // idx:tags:slug:{slug} → tagID
)

// Tag errors.
var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag already exists")
)

// CreateTag creates a new global tag.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		// Check if slug already exists globally.
		slugKey := []byte(tagBySlugPrefix + t.Slug)
		if _, err := txn.Get(slugKey); err == nil {
			return ErrTagExists
		}

		// Store tag.
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		key := []byte(tagPrefix + t.ID)
		if err := txn.Set(key, data); err != nil {
			return err
		}

		// Slug index (global).
		return txn.Set(slugKey, []byte(t.ID))
	})
}

// GetTagByID retrieves a tag by ID.
func (s *Store) GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var t domain.Tag
	key := buildKey(tagPrefix, tagID)
	defer releaseKey(key)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTagNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &t)
		})
	})
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTagBySlug retrieves a tag by its normalized slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tagID string
	slugKey := buildKey(tagBySlugPrefix, slug)
	defer releaseKey(slugKey)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slugKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTagNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			tagID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetTagByID(ctx, tagID)
}

// ListTags returns all tags with their projected item counts,
// sorted by name ascending.
func (s *Store) ListTags(ctx context.Context) ([]*domain.TagSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(tagPrefix)
	var tags []*domain.TagSummary

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchSize = 100

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var t domain.Tag
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &t)
			})
			if err != nil {
				continue
			}
			tags = append(tags, &domain.TagSummary{Tag: t})
		}

		// Project usage counts inside the same read transaction.
		for _, t := range tags {
			t.ItemCount = countPrefix(txn, []byte(itemsByTagPrefix+t.ID+":"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort by name ascending, case-insensitive, slug as tiebreaker.
	sort.Slice(tags, func(i, j int) bool {
		ni, nj := strings.ToLower(tags[i].Name), strings.ToLower(tags[j].Name)
		if ni != nj {
			return ni < nj
		}
		return tags[i].Slug < tags[j].Slug
	})

	return tags, nil
}

// GetTagSummary retrieves a tag together with its projected usage count.
func (s *Store) GetTagSummary(ctx context.Context, tagID string) (*domain.TagSummary, error) {
	t, err := s.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	summary := &domain.TagSummary{Tag: *t}
	err = s.db.View(func(txn *badger.Txn) error {
		summary.ItemCount = countPrefix(txn, []byte(itemsByTagPrefix+tagID+":"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count tag items: %w", err)
	}

	return summary, nil
}

// UpdateTag renames a tag, moving its slug index entry. Fails with
// ErrTagExists when the new slug already belongs to a different tag.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(tagPrefix + t.ID)

		stored, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTagNotFound
		}
		if err != nil {
			return err
		}

		var prev domain.Tag
		if err := stored.Value(func(val []byte) error {
			return json.Unmarshal(val, &prev)
		}); err != nil {
			return err
		}

		if t.Slug != prev.Slug {
			// The new slug must not belong to another tag.
			newSlugKey := []byte(tagBySlugPrefix + t.Slug)
			if existing, err := txn.Get(newSlugKey); err == nil {
				var ownerID string
				if err := existing.Value(func(val []byte) error {
					ownerID = string(val)
					return nil
				}); err != nil {
					return err
				}
				if ownerID != t.ID {
					return ErrTagExists
				}
			}

			oldSlugKey := []byte(tagBySlugPrefix + prev.Slug)
			if err := txn.Delete(oldSlugKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set(newSlugKey, []byte(t.ID)); err != nil {
				return err
			}
		}

		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		if errors.Is(err, ErrTagNotFound) || errors.Is(err, ErrTagExists) {
			return err
		}
		return fmt.Errorf("update tag: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("tag updated", "id", t.ID, "slug", t.Slug)
	}
	return nil
}

// DeleteTag hard-deletes a tag and detaches it from every item that
// carries it. The tag record, slug index, association index entries,
// and item updates all happen in a single transaction.
func (s *Store) DeleteTag(ctx context.Context, tagID string) error {
	t, err := s.GetTagByID(ctx, tagID)
	if err != nil {
		return err
	}

	var touchedItems []*domain.Item

	err = s.db.Update(func(txn *badger.Txn) error {
		// Remove main record.
		key := []byte(tagPrefix + tagID)
		if err := txn.Delete(key); err != nil {
			return err
		}

		// Remove slug index.
		slugKey := []byte(tagBySlugPrefix + t.Slug)
		if err := txn.Delete(slugKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		// Detach the tag from every item that carries it.
		indexPrefix := []byte(itemsByTagPrefix + tagID + ":")
		itemIDs, err := collectAssocMembers(txn, indexPrefix)
		if err != nil {
			return err
		}

		for _, itemID := range itemIDs {
			itemKey := []byte(itemPrefix + itemID)
			stored, err := txn.Get(itemKey)
			if errors.Is(err, badger.ErrKeyNotFound) {
				// Stale index entry; just drop it below.
				continue
			}
			if err != nil {
				return err
			}

			var item domain.Item
			if err := stored.Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return err
			}

			if item.RemoveTag(tagID) {
				item.Touch()
				data, err := json.Marshal(item)
				if err != nil {
					return err
				}
				if err := txn.Set(itemKey, data); err != nil {
					return err
				}
				itemCopy := item
				touchedItems = append(touchedItems, &itemCopy)
			}
		}

		for _, itemID := range itemIDs {
			assocKey := []byte(itemsByTagPrefix + tagID + ":" + itemID)
			if err := txn.Delete(assocKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	for _, item := range touchedItems {
		s.indexItemAsync(item)
	}

	if s.logger != nil {
		s.logger.Info("tag deleted", "id", tagID, "slug", t.Slug, "items_detached", len(touchedItems))
	}

	return nil
}

// FindOrCreateTagBySlug atomically finds an existing tag by slug or creates a new one.
// Returns (tag, created, error) where created is true if a new tag was made.
// The display name is only used when creating; an existing tag keeps the
// name it was first created with.
func (s *Store) FindOrCreateTagBySlug(ctx context.Context, slug, name string) (*domain.Tag, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	// Try to find existing tag first (optimistic read).
	existing, err := s.GetTagBySlug(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrTagNotFound) {
		return nil, false, err
	}

	// Tag doesn't exist, create it.
	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	t := &domain.Tag{
		ID:        tagID,
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.CreateTag(ctx, t); err != nil {
		if errors.Is(err, ErrTagExists) {
			// Race condition: another goroutine created it.
			existing, err := s.GetTagBySlug(ctx, slug)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return t, true, nil
}

// GetTagsForItem resolves an item's tag IDs to full tags, skipping any
// that no longer exist. Sorted alphabetically by slug.
func (s *Store) GetTagsForItem(ctx context.Context, item *domain.Item) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0, len(item.TagIDs))
	for _, tagID := range item.TagIDs {
		t, err := s.GetTagByID(ctx, tagID)
		if err != nil {
			continue // Skip missing tags.
		}
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Slug < tags[j].Slug
	})

	return tags, nil
}
