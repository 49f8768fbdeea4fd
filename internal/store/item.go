package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/linknest/linknest-server/internal/domain"
)

// Key prefixes for item storage.
const (
	itemPrefix       = "item:"          // item:{id} → Item JSON
	itemsByTagPrefix = "idx:items:tag:" // idx:items:tag:{tagID}:{itemID} → empty
)

var (
	// ErrItemNotFound is returned when an item is not found in the store.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateItem is returned when trying to create an item that already exists.
	ErrDuplicateItem = errors.New("item already exists")
	// ErrItemListImmutable is returned when an update tries to move an item between lists.
	ErrItemListImmutable = errors.New("item cannot move between lists")
)

// CreateItem creates a new item inside its owning list.
// The item record, the list index entry, and the tag index entries are
// written in a single transaction, and the owning list is touched.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(itemPrefix + item.ID)
		if _, err := txn.Get(key); err == nil {
			return ErrDuplicateItem
		}

		// Owning list must exist; touching it also bumps its timestamp.
		if err := touchListInTxn(txn, item.ListID); err != nil {
			return err
		}

		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		// List membership index. Plain allocation: Badger holds key
		// slices until commit, so a pooled buffer released inside the
		// closure could be reused and overwritten mid-transaction.
		listKey := []byte(itemsByListPrefix + item.ListID + ":" + item.ID)
		if err := txn.Set(listKey, []byte{}); err != nil {
			return err
		}

		// Tag association indexes.
		for _, tagID := range item.TagIDs {
			tagKey := []byte(itemsByTagPrefix + tagID + ":" + item.ID)
			if err := txn.Set(tagKey, []byte{}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateItem) || errors.Is(err, ErrListNotFound) {
			return err
		}
		return fmt.Errorf("create item: %w", err)
	}

	s.indexItemAsync(item)

	if s.logger != nil {
		s.logger.Info("item created", "id", item.ID, "list_id", item.ListID, "title", item.Title)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *Store) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := buildKey(itemPrefix, itemID)
	defer releaseKey(key)

	var item domain.Item
	if err := s.get(key, &item); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}

// UpdateItem updates an existing item. The owning list is immutable;
// tag index entries are diffed against the stored item, and the owning
// list is touched, all in one transaction.
func (s *Store) UpdateItem(ctx context.Context, item *domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(itemPrefix + item.ID)

		stored, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		var prev domain.Item
		if err := stored.Value(func(val []byte) error {
			return json.Unmarshal(val, &prev)
		}); err != nil {
			return err
		}

		if item.ListID != prev.ListID {
			return ErrItemListImmutable
		}

		// Diff tag associations.
		prevTags := make(map[string]bool, len(prev.TagIDs))
		for _, tagID := range prev.TagIDs {
			prevTags[tagID] = true
		}
		for _, tagID := range item.TagIDs {
			if prevTags[tagID] {
				delete(prevTags, tagID)
				continue
			}
			tagKey := []byte(itemsByTagPrefix + tagID + ":" + item.ID)
			if err := txn.Set(tagKey, []byte{}); err != nil {
				return err
			}
		}
		for tagID := range prevTags {
			tagKey := []byte(itemsByTagPrefix + tagID + ":" + item.ID)
			if err := txn.Delete(tagKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}

		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		return touchListInTxn(txn, item.ListID)
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrItemListImmutable) {
			return err
		}
		return fmt.Errorf("update item: %w", err)
	}

	s.indexItemAsync(item)

	if s.logger != nil {
		s.logger.Info("item updated", "id", item.ID, "title", item.Title)
	}
	return nil
}

// DeleteItem deletes an item along with its index entries and touches
// the owning list.
func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := deleteItemInTxn(txn, itemID); err != nil {
			return err
		}
		return touchListInTxn(txn, item.ListID)
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.removeItemFromIndexAsync(itemID)

	if s.logger != nil {
		s.logger.Info("item deleted", "id", itemID, "list_id", item.ListID)
	}
	return nil
}

// deleteItemInTxn removes an item record and all its index entries
// within an existing transaction. Does not touch the owning list.
func deleteItemInTxn(txn *badger.Txn, itemID string) error {
	key := []byte(itemPrefix + itemID)

	stored, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrItemNotFound
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

	if err := txn.Delete(key); err != nil {
		return err
	}

	listKey := []byte(itemsByListPrefix + item.ListID + ":" + itemID)
	if err := txn.Delete(listKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	for _, tagID := range item.TagIDs {
		tagKey := []byte(itemsByTagPrefix + tagID + ":" + itemID)
		if err := txn.Delete(tagKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
	}

	return nil
}

// ListItemsByList returns all items in a list, sorted by creation time
// ascending so the list reads in the order items were added.
func (s *Store) ListItemsByList(ctx context.Context, listID string) ([]*domain.Item, error) {
	if _, err := s.GetList(ctx, listID); err != nil {
		return nil, err
	}

	var itemIDs []string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		itemIDs, err = collectAssocMembers(txn, []byte(itemsByListPrefix+listID+":"))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items := make([]*domain.Item, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := s.GetItem(ctx, itemID)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to get item", "id", itemID, "error", err)
			}
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// GetItemIDsForTag returns all item IDs carrying a specific tag.
func (s *Store) GetItemIDsForTag(ctx context.Context, tagID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var itemIDs []string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		itemIDs, err = collectAssocMembers(txn, []byte(itemsByTagPrefix+tagID+":"))
		return err
	})
	return itemIDs, err
}

// ListAllItems returns every item in the store. Used to rebuild the
// search index at startup.
func (s *Store) ListAllItems(ctx context.Context) ([]*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(itemPrefix)
	var items []*domain.Item

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchSize = 100

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var item domain.Item
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			})
			if err != nil {
				continue
			}
			items = append(items, &item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list all items: %w", err)
	}

	return items, nil
}

// collectAssocMembers gathers the member IDs from an association index
// prefix of the form {prefix}{owner}: within a transaction.
func collectAssocMembers(txn *badger.Txn, prefix []byte) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var members []string
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		key := string(it.Item().Key())
		members = append(members, strings.TrimPrefix(key, string(prefix)))
	}
	return members, nil
}
